package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"carshare/internal/modules/pricing"
)

type smokeResult struct {
	Name   string
	Status string
	Detail string
}

func smokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run PASS/FAIL checks against a running API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Value: "http://localhost:8080", EnvVars: []string{"CARSHARE_SMOKE_BASE_URL"}},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			results := runSmoke(ctx, &http.Client{}, strings.TrimRight(c.String("base-url"), "/"))
			fail := 0
			for _, r := range results {
				fmt.Fprintf(c.App.Writer, "%-4s %-20s %s\n", r.Status, r.Name, r.Detail)
				if r.Status == "FAIL" {
					fail++
				}
			}
			if fail > 0 {
				return cli.Exit(fmt.Sprintf("%d smoke checks failed", fail), 1)
			}
			return nil
		},
	}
}

func runSmoke(ctx context.Context, client *http.Client, baseURL string) []smokeResult {
	var out []smokeResult

	status, body, err := doSmoke(ctx, client, http.MethodGet, baseURL+"/health", nil)
	out = append(out, expect("health", status, http.StatusOK, body, err))

	trip := pricing.TripInput{
		Start:          time.Now().Add(time.Hour).Truncate(time.Minute),
		DrivingMinutes: 20,
		StayingMinutes: 60,
		DistanceKm:     8,
	}
	payload, _ := json.Marshal(trip)
	status, body, err = doSmoke(ctx, client, http.MethodPost, baseURL+"/api/estimates", payload)
	r := expect("create estimate", status, http.StatusCreated, body, err)
	var q pricing.Quote
	if r.Status == "PASS" {
		if err := json.Unmarshal(body, &q); err != nil || q.ID == "" || len(q.Result.Options) == 0 {
			r = smokeResult{Name: r.Name, Status: "FAIL", Detail: "unexpected quote body"}
		} else {
			r.Detail = fmt.Sprintf("cheapest %s", q.Result.CheapestOption)
		}
	}
	out = append(out, r)

	status, body, err = doSmoke(ctx, client, http.MethodPost, baseURL+"/api/estimates", []byte(`{"driving_minutes":-1}`))
	out = append(out, expect("reject bad trip", status, http.StatusBadRequest, body, err))

	if q.ID != "" {
		status, body, err = doSmoke(ctx, client, http.MethodGet, baseURL+"/api/estimates/"+q.ID, nil)
		switch {
		case err == nil && status == http.StatusNotFound:
			out = append(out, smokeResult{Name: "fetch quote", Status: "SKIP", Detail: "persistence disabled"})
		default:
			out = append(out, expect("fetch quote", status, http.StatusOK, body, err))
		}
	}

	status, body, err = doSmoke(ctx, client, http.MethodGet, baseURL+"/api/rates", nil)
	out = append(out, expect("rates", status, http.StatusOK, body, err))
	return out
}

func expect(name string, got, want int, body []byte, err error) smokeResult {
	if err != nil {
		return smokeResult{Name: name, Status: "FAIL", Detail: err.Error()}
	}
	if got != want {
		return smokeResult{Name: name, Status: "FAIL", Detail: fmt.Sprintf("status %d, want %d: %s", got, want, bytes.TrimSpace(body))}
	}
	return smokeResult{Name: name, Status: "PASS"}
}

func doSmoke(ctx context.Context, client *http.Client, method, url string, body []byte) (int, []byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}
