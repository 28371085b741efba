package flightschedule

// Record is one row of a Bureau of Transportation Statistics on-time performance export.
// CRS times are the scheduled local clock times written as HHMM.
type Record struct {
	Year       int    `csv:"Year"`
	Month      int    `csv:"Month"`
	DayOfMonth int    `csv:"DayofMonth"`
	CRSDepTime int    `csv:"CRSDepTime"`
	CRSArrTime int    `csv:"CRSArrTime"`
	Origin     string `csv:"Origin"`
	Dest       string `csv:"Dest"`
}
