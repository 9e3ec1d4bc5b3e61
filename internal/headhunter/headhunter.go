// Package headhunter fetches resumes from the hh.ru API.
package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL           = "https://api.hh.ru"
	mineResumID      = "mine"
	DefaultUserAgent = "resume-screener (resume-screener@example.com)"
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: DefaultUserAgent,
	}
}
