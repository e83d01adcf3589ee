package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kestrun/example-test-harness/framework"
)

// AppInfo is status information returned by the example app from the initial status query.
type AppInfo struct {
	AppInfoBase

	// FullData is the entire response received from the app, which might contain additional
	// properties beyond AppInfoBase.
	FullData []byte
}

// AppInfoBase is the basic set of properties that all example apps must provide.
type AppInfoBase struct {
	// Name is the name of the example app, such as "multiroutes".
	Name string `json:"name"`

	// Capabilities is a list of strings representing optional features of the app.
	Capabilities framework.Capabilities `json:"capabilities"`
}

func queryAppInfo(url string, timeout time.Duration, output io.Writer) (AppInfo, error) {
	fmt.Fprintf(output, "Connecting to example app at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			if resp.StatusCode != 200 {
				return AppInfo{}, fmt.Errorf("app returned status code %d from status query", resp.StatusCode)
			}
			respData, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return AppInfo{}, err
			}
			var base AppInfoBase
			if len(bytes.TrimSpace(respData)) == 0 || json.Unmarshal(respData, &base) != nil {
				// Apps that predate the status metadata contract answer 200 with a plain
				// body. They still count as alive, just with no declared capabilities.
				fmt.Fprintf(output, "Status query successful, but app provided no metadata (response was: %q)\n",
					string(respData))
				return AppInfo{}, nil
			}
			fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			return AppInfo{AppInfoBase: base, FullData: respData}, nil
		}
		if !time.Now().Before(deadline) {
			return AppInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// StopService tells the example app that it should exit.
func (h *TestHarness) StopService() error {
	req, _ := http.NewRequest("DELETE", h.appBaseURL, nil)
	resp, err := http.DefaultClient.Do(req)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err == nil && resp.StatusCode >= 300 {
		return fmt.Errorf("app returned HTTP %d", resp.StatusCode)
	}
	// It's normal for the request to return an I/O error if the app immediately quit before sending a response
	return nil
}

func doRequest(method, url string, body []byte) ([]byte, http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if body != nil {
			message = " (" + string(body) + ")"
		}
		err = fmt.Errorf("app returned error %d for %s %s%s", resp.StatusCode, method, url, message)
	}
	return respBody, resp.Header, err
}
