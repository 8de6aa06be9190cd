package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// Credentials authorize requests either with a personal access token or with basic auth.
type Credentials struct {
	Userinfo *url.Userinfo
	Token    string
}

func (c *Credentials) authorize(request *http.Request) {
	if c == nil {
		return
	}
	if c.Token != "" {
		request.Header.Set("Authorization", "Bearer "+c.Token)
		return
	}
	if c.Userinfo != nil {
		password, _ := c.Userinfo.Password()
		request.SetBasicAuth(c.Userinfo.Username(), password)
	}
}

// HttpError is returned for every response that is not 200 OK.
type HttpError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HttpError) Error() string {
	if e.Body == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}

// Unauthorized reports whether the server rejected the credentials.
func (e *HttpError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NewHttpClient keeps session cookies so the server does not need to authenticate every call.
func NewHttpClient(timeout time.Duration) *http.Client {
	jar, _ := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}

func CreateJsonRequest(client *http.Client, httpMethod string, server *url.URL, credentials *Credentials, payload io.Reader) (*http.Response, error) {
	request, err := http.NewRequest(httpMethod, server.String(), payload)
	if err != nil {
		return nil, err
	}
	credentials.authorize(request)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	return response, err
}

// ReadJson decodes the body of a 200 response into result and closes the body.
// Any other status is returned as *HttpError, also when the body is empty.
func ReadJson(response *http.Response, result interface{}) error {
	defer func() {
		err := response.Body.Close()
		if err != nil {
			log.Warn().Err(err).Msg("Response could not be closed.")
		}
	}()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusOK {
		body, _ := decode(data, response.Header.Get("Content-Type"))
		return &HttpError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if data, err = decode(data, response.Header.Get("Content-Type")); err != nil {
		return err
	}
	if err = json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

// decode converts the body into utf-8 according to the content type.
func decode(data []byte, contentType string) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	reader, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return data, err
	}
	return io.ReadAll(reader)
}

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

// NewTestResponse builds a JSON response for NewTestClient.
func NewTestResponse(statusCode int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json; charset=utf-8")
	return &http.Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}
