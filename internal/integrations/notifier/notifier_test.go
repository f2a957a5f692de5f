package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              15,
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "+15550100",
		Date:            time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		TimeSlot:        types.MustTimeString("19:30"),
		GuestCount:      6,
		Status:          domain.StatusPendingPayment,
		DepositRequired: true,
	}
}

func TestNewReservationCreatedEvent(t *testing.T) {
	tableIDs := []int64{4, 5}
	now := time.Date(2026, 11, 19, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	event := NewReservationCreatedEvent(sampleReservation(), tableIDs, 50000, now)
	tableIDs[0] = 99

	_, err := uuid.Parse(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.Equal(t, []int64{4, 5}, event.TableIDs, "event keeps its own copy of table ids")

	body, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"event_id": "`+event.EventID+`",
		"occurred_at": "2026-11-19T07:00:00Z",
		"reservation_id": 15,
		"customer_name": "Jane Doe",
		"customer_email": "jane@example.com",
		"customer_phone": "+15550100",
		"date": "2026-11-20",
		"time_slot": "19:30",
		"guest_count": 6,
		"status": "Pending Payment",
		"table_ids": [4, 5],
		"deposit_required": true,
		"deposit_amount": 50000
	}`, string(body))
}

func TestLogNotifier_ReservationCreated(t *testing.T) {
	log := &recordingLogger{}
	n := NewLogNotifier(log)

	err := n.ReservationCreated(context.Background(), sampleReservation(), []int64{4, 5}, 50000)

	require.NoError(t, err)
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "Email sent to jane@example.com for reservation #15")
}
