package get_availability

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	getAvailability "github.com/m04kA/RestaurantReservationService/internal/usecase/get_availability"
)

var (
	errInvalidDate     = errors.New("invalid date")
	errInvalidGuests   = errors.New("invalid guests")
	errInvalidLocation = errors.New("invalid location")
)

// SlotResponse доступность одного слота
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ToUseCaseRequest парсит query параметры date, guests, location
func ToUseCaseRequest(dateStr, guestsStr, locationStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	guests, err := strconv.Atoi(guestsStr)
	if err != nil || guests <= 0 {
		return nil, errInvalidGuests
	}

	req := &getAvailability.Request{
		Date:       date,
		GuestCount: guests,
	}

	if locationStr != "" {
		location := domain.TableLocation(locationStr)
		if !location.IsValid() {
			return nil, errInvalidLocation
		}
		req.Location = &location
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}
	return &AvailabilityResponse{Slots: slots}
}
