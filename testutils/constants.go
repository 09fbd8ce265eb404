package testutils

// Various constant defined for to obtain dummy data for tests
const (
	ApplicationConfigPath = "/testutils/testdata/sample_config.json" // ApplicationConfigPath points to dummy config file in json format for Config
	PayloadPath           = "/testutils/testdata/payload.json"       // PayloadPath points to json file containing dummy Payload
	RecordsPath           = "/testutils/testdata/records.json"       // RecordsPath points to json file containing dummy coverage records
)
