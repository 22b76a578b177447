// internal/listings/universities.go
package listings

// DefaultUniversity is used whenever a student has not picked a
// university or picked one we have no coordinates for.
const DefaultUniversity = "University of Colombo"

// universityCoordinates maps each supported university to its campus
// position as [latitude, longitude].
var universityCoordinates = map[string][2]float64{
	"University of Colombo":             {6.9000, 79.8588},
	"University of Moratuwa":            {6.7951, 79.9009},
	"University of Peradeniya":          {7.2549, 80.5974},
	"University of Kelaniya":            {6.9733, 79.9157},
	"University of Ruhuna":              {5.9383, 80.5756},
	"University of Sri Jayewardenepura": {6.8528, 79.9036},
}

// UniversityPosition returns the campus coordinates for a university
// name, falling back to the University of Colombo for unknown names.
func UniversityPosition(name string) [2]float64 {
	if pos, ok := universityCoordinates[name]; ok {
		return pos
	}
	return universityCoordinates[DefaultUniversity]
}

// Universities lists the supported university names in a fixed order
// for the selection dropdown.
func Universities() []string {
	return []string{
		"University of Colombo",
		"University of Moratuwa",
		"University of Peradeniya",
		"University of Kelaniya",
		"University of Ruhuna",
		"University of Sri Jayewardenepura",
	}
}
