package notifier

import (
	"context"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// LogNotifier пишет уведомление в лог, когда брокер не настроен
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// ReservationCreated логирует отправку подтверждения гостю
func (n *LogNotifier) ReservationCreated(_ context.Context, res *domain.Reservation, tableIDs []int64, depositAmount int64) error {
	event := NewReservationCreatedEvent(res, tableIDs, depositAmount, time.Now())
	n.log.Info("[Notification] Email sent to %s for reservation #%d (event=%s, tables=%v, deposit=%d)",
		event.CustomerEmail, event.ReservationID, event.EventID, event.TableIDs, event.DepositAmount)
	return nil
}
