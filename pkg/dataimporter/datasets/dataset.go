package datasets

type DataSource struct {
	Identifier string    `yaml:"identifier"`
	Provider   Provider  `yaml:"provider"`
	Datasets   []DataSet `yaml:"datasets"`
}

type DataSet struct {
	Identifier    string        `yaml:"identifier"`
	DataSourceRef string        `yaml:"-" json:"-"`
	Format        DataSetFormat `yaml:"format"`

	Provider Provider `yaml:"-"`

	// Local path or http(s) URL
	Source string `yaml:"source"`

	ImportDestination ImportDestination `yaml:"destination"`
}

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}

type DataSetFormat string

const (
	DataSetFormatOurAirports    DataSetFormat = "ourairports"
	DataSetFormatFlightSchedule DataSetFormat = "flight-schedule"
)

type ImportDestination string

const (
	ImportDestinationDatabase ImportDestination = "database"
	ImportDestinationQueue    ImportDestination = "queue"
)
