// Package client is the Go counterpart of the shop's report form: an API
// client, the editable one-day draft, and the remembered seller name.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"parfumnotebook-backend/models"
)

// ErrNotFound signals that no report exists for the requested date or id
var ErrNotFound = errors.New("report not found")

// ReportAggregate mirrors the GET /api/reports response
type ReportAggregate struct {
	Report              models.DailyReport          `json:"report"`
	Items               []models.ReportItem         `json:"items"`
	Tasks               []models.Task               `json:"tasks"`
	TesterWriteOffItems []models.TesterWriteOffItem `json:"testerWriteOffItems"`
}

// SavePayload mirrors the POST /api/reports request body
type SavePayload struct {
	Date                string          `json:"date"`
	Department          string          `json:"department"`
	Seller              string          `json:"seller"`
	PrevDayBalance      float64         `json:"prevDayBalance"`
	Cashless            float64         `json:"cashless"`
	Remaining           float64         `json:"remaining"`
	SafeCashless        float64         `json:"safeCashless"`
	SafeTerminal        float64         `json:"safeTerminal"`
	Items               []ItemPayload   `json:"items"`
	Tasks               []TaskPayload   `json:"tasks"`
	TesterWriteOffItems []TesterPayload `json:"testerWriteOffItems"`
}

type ItemPayload struct {
	PositionNo    int     `json:"position_no"`
	Volume        string  `json:"volume"`
	Bottle        string  `json:"bottle"`
	Color         string  `json:"color"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	Remark        string  `json:"remark"`
	CarryFromPrev bool    `json:"carry_from_prev"`
}

type TaskPayload struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type TesterPayload struct {
	Text     string  `json:"text"`
	Quantity float64 `json:"quantity"`
}

// Client talks to the report backend. Token is sent as a bearer header when
// set; the server currently does not require it on report routes.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) do(method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTPClient.Do(req)
}

// LoadReport fetches the aggregate for one date. ErrNotFound when nothing was
// ever saved for it.
func (c *Client) LoadReport(date string) (*ReportAggregate, error) {
	resp, err := c.do(http.MethodGet, "/api/reports?date="+url.QueryEscape(date), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load report: unexpected status %d", resp.StatusCode)
	}

	var agg ReportAggregate
	if err := json.NewDecoder(resp.Body).Decode(&agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// SaveReport submits the full-day payload and returns the persisted header
func (c *Client) SaveReport(payload SavePayload) (*models.DailyReport, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(http.MethodPost, "/api/reports", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("save report: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Success bool               `json:"success"`
		Report  models.DailyReport `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, errors.New("save report: server did not confirm")
	}
	return &out.Report, nil
}

// ExportCSV downloads the CSV document for a saved report id
func (c *Client) ExportCSV(reportID uint) ([]byte, error) {
	resp, err := c.do(http.MethodGet, fmt.Sprintf("/api/reports/%d/export/csv", reportID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export csv: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
