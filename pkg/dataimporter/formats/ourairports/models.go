package ourairports

// Airport is one row of the OurAirports airports.csv export. Only the columns we use are mapped.
type Airport struct {
	Identifier   string  `csv:"ident"`
	Kind         string  `csv:"type"`
	Name         string  `csv:"name"`
	Latitude     float64 `csv:"latitude_deg"`
	Longitude    float64 `csv:"longitude_deg"`
	Municipality string  `csv:"municipality"`
	IATACode     string  `csv:"iata_code"`
}
