package airlabs

// envelope is the common AirLabs response wrapper.
// Successful calls fill Response; failed calls fill Error and usually still return 200.
type envelope[T any] struct {
	Response *T        `json:"response"`
	Error    *apiError `json:"error,omitempty"`
}

// apiError is the AirLabs error body, e.g. {"code":"unknown_api_key","message":"..."}.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// flightDTO mirrors the AirLabs flight object. Keys are the upstream ones verbatim;
// /flights returns a subset of the /flight fields.
type flightDTO struct {
	Hex          string `json:"hex"`
	RegNumber    string `json:"reg_number"`
	Flag         string `json:"flag"`
	AircraftICAO string `json:"aircraft_icao"`
	Squawk       string `json:"squawk"`

	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Alt    *int     `json:"alt"`
	Dir    *float64 `json:"dir"`
	Speed  *int     `json:"speed"`
	VSpeed *float64 `json:"v_speed"`

	FlightNumber string `json:"flight_number"`
	FlightIATA   string `json:"flight_iata"`
	FlightICAO   string `json:"flight_icao"`
	AirlineIATA  string `json:"airline_iata"`
	AirlineICAO  string `json:"airline_icao"`
	AirlineName  string `json:"airline_name"`

	DepIATA         string `json:"dep_iata"`
	DepICAO         string `json:"dep_icao"`
	DepName         string `json:"dep_name"`
	DepCity         string `json:"dep_city"`
	DepCountry      string `json:"dep_country"`
	DepTerminal     string `json:"dep_terminal"`
	DepGate         string `json:"dep_gate"`
	DepTime         string `json:"dep_time"`
	DepTimeUTC      string `json:"dep_time_utc"`
	DepEstimated    string `json:"dep_estimated"`
	DepEstimatedUTC string `json:"dep_estimated_utc"`
	DepActual       string `json:"dep_actual"`
	DepActualUTC    string `json:"dep_actual_utc"`
	DepActualTS     *int64 `json:"dep_actual_ts"`
	DepDelayed      *int   `json:"dep_delayed"`

	ArrIATA         string `json:"arr_iata"`
	ArrICAO         string `json:"arr_icao"`
	ArrName         string `json:"arr_name"`
	ArrCity         string `json:"arr_city"`
	ArrCountry      string `json:"arr_country"`
	ArrTerminal     string `json:"arr_terminal"`
	ArrGate         string `json:"arr_gate"`
	ArrBaggage      string `json:"arr_baggage"`
	ArrTime         string `json:"arr_time"`
	ArrTimeUTC      string `json:"arr_time_utc"`
	ArrEstimated    string `json:"arr_estimated"`
	ArrEstimatedUTC string `json:"arr_estimated_utc"`
	ArrActual       string `json:"arr_actual"`
	ArrActualUTC    string `json:"arr_actual_utc"`
	ArrActualTS     *int64 `json:"arr_actual_ts"`
	ArrDelayed      *int   `json:"arr_delayed"`

	Status   string   `json:"status"`
	Duration *int     `json:"duration"`
	Delayed  *int     `json:"delayed"`
	Updated  *int64   `json:"updated"`
	Percent  *float64 `json:"percent"`
	ETA      *int     `json:"eta"`

	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"type"`
	Engine       string `json:"engine"`
	EngineCount  string `json:"engine_count"`
	MSN          string `json:"msn"`
	Built        *int   `json:"built"`
	Age          *int   `json:"age"`
}
