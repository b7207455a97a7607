package book_place

import (
	"context"

	bookPlace "github.com/mlegeay/examslots/internal/usecase/book_place"
)

type BookPlaceUseCase interface {
	Execute(ctx context.Context, req *bookPlace.Request) (*bookPlace.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
