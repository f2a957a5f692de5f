package update_deposit_status

import "context"

type ReservationService interface {
	UpdateDeposit(ctx context.Context, id int64, paid bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
