package engine

import (
	"sort"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// SelectTables выбирает столы для компании из guestCount гостей
//
// candidates должны идти в порядке каталога (id по возрастанию): при равной вместимости
// побеждает стол, встреченный первым. occupied содержит столы, уже занятые в этом слоте.
//
// 1. Одиночный стол минимальной вместимости, которой хватает (всегда предпочтительнее объединения).
// 2. Иначе объединяемые столы по убыванию вместимости, набираем жадно, пока не хватит мест.
//
// Жадный набор не гарантирует минимального числа столов или лишних мест.
// ok == false означает, что свободных мест нет; это штатный результат.
func SelectTables(candidates []domain.Table, occupied map[int64]struct{}, guestCount int) (domain.TableAssignment, bool) {
	if guestCount <= 0 {
		return domain.TableAssignment{}, false
	}

	free := make([]domain.Table, 0, len(candidates))
	for _, t := range candidates {
		if !t.IsBookable() {
			continue
		}
		if _, busy := occupied[t.ID]; busy {
			continue
		}
		free = append(free, t)
	}

	if len(free) == 0 {
		return domain.TableAssignment{}, false
	}

	// Шаг 1: лучший одиночный стол
	bestIdx := -1
	for i, t := range free {
		if t.Capacity < guestCount {
			continue
		}
		if bestIdx == -1 || t.Capacity < free[bestIdx].Capacity {
			bestIdx = i
		}
	}
	if bestIdx != -1 {
		return domain.TableAssignment{Tables: []domain.Table{free[bestIdx]}}, true
	}

	// Шаг 2: объединение
	joinable := make([]domain.Table, 0, len(free))
	for _, t := range free {
		if t.IsJoinable {
			joinable = append(joinable, t)
		}
	}

	sort.SliceStable(joinable, func(i, j int) bool {
		return joinable[i].Capacity > joinable[j].Capacity
	})

	picked := make([]domain.Table, 0, len(joinable))
	total := 0
	for _, t := range joinable {
		picked = append(picked, t)
		total += t.Capacity
		if total >= guestCount {
			return domain.TableAssignment{Tables: picked, Joined: len(picked) > 1}, true
		}
	}

	return domain.TableAssignment{}, false
}
