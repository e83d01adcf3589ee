package data

import (
	"errors"
	"io/fs"
)

// LoadOpenAPIFixture returns the embedded expected OpenAPI document for the named
// example app, or found=false if there is no fixture for that app.
func LoadOpenAPIFixture(appName string) (data []byte, found bool, err error) {
	data, err = dataFilesRoot.ReadFile(dataBasePath + "/openapi/" + appName + ".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
