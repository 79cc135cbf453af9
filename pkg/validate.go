package pkg

import (
	"strings"

	"github.com/imroc/req/v3"
)

const (
	probeText = "hello"
	probePath = "/translate_a/single"
)

// CheckHostAvailability sends a tiny untokened probe translation to a
// service host and reports whether it answered with a usable body.
func CheckHostAvailability(client *req.Client, host string) (bool, error) {
	if !strings.HasPrefix(host, "http") {
		host = "https://" + host
	}
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "en",
			"tl":     "es",
			"dt":     "t",
			"q":      probeText,
		}).
		Get(host + probePath)
	if err != nil {
		return false, err
	}
	if !resp.IsSuccessState() {
		return false, nil
	}
	return strings.HasPrefix(strings.TrimSpace(resp.String()), "["), nil
}
