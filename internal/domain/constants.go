package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinVehicleYear = 1950
	MaxVINLength   = 17
)

// ServiceTypes каталог услуг мастерской
// Используется для валидации при создании и редактировании
var ServiceTypes = []string{
	"Service",
	"Tires",
	"Suspension",
	"Engine Repairs",
	"Electrical",
	"Sound Installation",
	"Towing",
	"Brakes",
}

// IsValidServiceType проверяет, что тип услуги есть в каталоге
func IsValidServiceType(serviceType string) bool {
	for _, t := range ServiceTypes {
		if t == serviceType {
			return true
		}
	}
	return false
}
