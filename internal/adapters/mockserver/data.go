package mockserver

type coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// WeatherResponse mirrors the /data/2.5/weather payload
type WeatherResponse struct {
	Coord   coord        `json:"coord"`
	Weather []condition  `json:"weather"`
	Main    mainReadings `json:"main"`
	Wind    wind         `json:"wind"`
	Dt      int64        `json:"dt"`
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Cod     int          `json:"cod"`
}

type forecastEntry struct {
	Dt      int64        `json:"dt"`
	Main    mainReadings `json:"main"`
	Weather []condition  `json:"weather"`
	Wind    wind         `json:"wind"`
	DtTxt   string       `json:"dt_txt"`
}

type forecastCity struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Coord   coord  `json:"coord"`
	Country string `json:"country"`
}

// ForecastResponse mirrors the /data/2.5/forecast payload
type ForecastResponse struct {
	Cod     string          `json:"cod"`
	Message int             `json:"message"`
	Cnt     int             `json:"cnt"`
	List    []forecastEntry `json:"list"`
	City    forecastCity    `json:"city"`
}

// ErrorResponse mirrors the API's error body
type ErrorResponse struct {
	Cod     string `json:"cod"`
	Message string `json:"message"`
}

type city struct {
	id      int
	name    string
	country string
	coord   coord
	temp    float64
	sky     condition
}

var cities = map[string]city{
	"london": {id: 2643743, name: "London", country: "GB", coord: coord{Lon: -0.1257, Lat: 51.5085}, temp: 288.15,
		sky: condition{ID: 803, Main: "Clouds", Description: "broken clouds", Icon: "04d"}},
	"paris": {id: 2988507, name: "Paris", country: "FR", coord: coord{Lon: 2.3488, Lat: 48.8534}, temp: 291.15,
		sky: condition{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
	"berlin": {id: 2950159, name: "Berlin", country: "DE", coord: coord{Lon: 13.4105, Lat: 52.5244}, temp: 285.15,
		sky: condition{ID: 804, Main: "Clouds", Description: "overcast clouds", Icon: "04d"}},
	"kyiv": {id: 703448, name: "Kyiv", country: "UA", coord: coord{Lon: 30.5167, Lat: 50.4333}, temp: 283.65,
		sky: condition{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"}},
}

func (c city) readings(offset float64) mainReadings {
	temp := c.temp + offset
	return mainReadings{
		Temp:      temp,
		FeelsLike: temp - 1.2,
		TempMin:   temp - 2,
		TempMax:   temp + 2,
		Pressure:  1013,
		Humidity:  72,
	}
}
