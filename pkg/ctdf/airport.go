package ctdf

type Airport struct {
	IATACode   string `bson:"iatacode"`
	Identifier string `bson:"identifier"`

	Name         string `bson:"name"`
	Kind         string `bson:"kind"`
	Municipality string `bson:"municipality"`

	Location Coordinates `bson:"location"`
}
