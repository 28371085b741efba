package manager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

const DefaultDataSourcesDirectory = "data/datasources/"

func GetRegisteredDataSets() ([]datasets.DataSet, error) {
	return LoadDataSets(DefaultDataSourcesDirectory)
}

// LoadDataSets reads every yaml file in directory. A file may hold several data source documents,
// each dataset identifier is prefixed with its data source identifier.
func LoadDataSets(directory string) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasource file")

			datasourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

			for {
				var datasource datasets.DataSource
				if decoder.Decode(&datasource) != nil {
					break
				}

				for _, dataset := range datasource.Datasets {
					dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
					dataset.DataSourceRef = datasource.Identifier
					dataset.Provider = datasource.Provider

					if dataset.ImportDestination == "" {
						dataset.ImportDestination = datasets.ImportDestinationDatabase
					}

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("load datasources directory %s: %w", directory, err)
	}

	return registeredDatasets, nil
}
