package domain

// Ключи таблицы settings
const (
	SettingRestaurantHours = "restaurant_hours"
	SettingDepositConfig   = "deposit_config"
)

// RestaurantHours часы работы и шаг слотов
// Поля хранятся как есть: незаданные или нечитаемые значения заменяются значениями по умолчанию при генерации слотов
type RestaurantHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	Interval int    `json:"interval"`
}

// DepositConfig правила депозита
type DepositConfig struct {
	Threshold int    `json:"threshold"`
	Amount    int64  `json:"amount"`
	BankInfo  string `json:"bank_info,omitempty"`
}

// RequiresDeposit группа из Threshold и более гостей вносит депозит
func (c DepositConfig) RequiresDeposit(guestCount int) bool {
	return guestCount >= c.Threshold
}

// DefaultDepositConfig значения, если настройка отсутствует
func DefaultDepositConfig() DepositConfig {
	return DepositConfig{
		Threshold: DefaultDepositThreshold,
		Amount:    DefaultDepositAmount,
	}
}
