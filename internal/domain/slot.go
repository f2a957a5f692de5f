package domain

import "github.com/m04kA/RestaurantReservationService/pkg/types"

// SlotAvailability результат проверки одного слота
type SlotAvailability struct {
	Time      types.TimeString
	Available bool
}

// TableAssignment результат подбора столов
type TableAssignment struct {
	Tables []Table
	Joined bool
}

// TableIDs идентификаторы в порядке назначения
func (a TableAssignment) TableIDs() []int64 {
	ids := make([]int64, len(a.Tables))
	for i, t := range a.Tables {
		ids[i] = t.ID
	}
	return ids
}

// TotalCapacity суммарная вместимость
func (a TableAssignment) TotalCapacity() int {
	total := 0
	for _, t := range a.Tables {
		total += t.Capacity
	}
	return total
}
