package domain

// Значения по умолчанию для часов работы
const (
	DefaultOpenTime        = "12:00"
	DefaultCloseTime       = "22:00"
	DefaultIntervalMinutes = 30
)

// Значения по умолчанию для депозита
const (
	DefaultDepositThreshold = 5
	DefaultDepositAmount    = 50000
)

// Бизнес-ограничения
const (
	DefaultTableType      = "Standard"
	MaxSpecialRequestsLen = 1000
	MaxCustomerNameLen    = 255
	MaxGuestCount         = 100
	MaxTableCapacity      = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimeSlots используется, когда настройка restaurant_hours отсутствует полностью
var DefaultTimeSlots = []string{
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	"18:00", "18:30", "19:00", "19:30", "20:00", "20:30",
	"21:00", "21:30", "22:00",
}

// OccupyingStatuses статусы, при которых назначенные столы заняты в слоте
var OccupyingStatuses = []ReservationStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusCompleted,
}

// ActiveStatuses статусы, при которых стол нельзя удалить
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusPendingPayment,
}
