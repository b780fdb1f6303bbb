package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"vrp-client/internal/adapters/vrphttp"
	"vrp-client/internal/client"
	"vrp-client/internal/domain"
)

const problem = `{
  "visits": {"order_1": {"location": {"lat": 49.227107, "lng": -123.1163085}}},
  "fleet": {"vehicle_1": {"start_location": {"lat": 49.2553636, "lng": -123.0873365}}}
}`

func writeProblem(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.json")
	if err := os.WriteFile(path, []byte(problem), 0o600); err != nil {
		t.Fatalf("write problem: %v", err)
	}
	return path
}

func TestRunSolve(t *testing.T) {
	mt := vrphttp.NewMockTransport(map[string]vrphttp.MockResponse{
		"https://vrp.test/v1/vrp": {Status: http.StatusOK, Body: `{"status":"success","solution":{"vehicle_1":[{"location_id":"order_1"}]}}`},
	})
	c := client.New(client.Config{Token: "tok", BaseURL: "https://vrp.test"}, client.WithTransport(mt))

	var out bytes.Buffer
	if err := run(context.Background(), c, "solve", writeProblem(t), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got struct {
		Status string `json:"status"`
		Routes []struct {
			VehicleID string `json:"vehicle_id"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output: %v\n%s", err, out.String())
	}
	if got.Status != "success" || len(got.Routes) != 1 || got.Routes[0].VehicleID != "vehicle_1" {
		t.Fatalf("output = %s", out.String())
	}
}

func TestRunFixPreconditionFails(t *testing.T) {
	mt := vrphttp.NewMockTransport(nil)
	c := client.New(client.Config{Token: "tok", BaseURL: "https://vrp.test"}, client.WithTransport(mt))

	err := run(context.Background(), c, "fix", writeProblem(t), &bytes.Buffer{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(mt.Calls()) != 0 {
		t.Fatal("fix precondition failure should not reach the transport")
	}
}

func TestRunUnknownMode(t *testing.T) {
	c := client.New(client.Config{Token: "tok"}, client.WithTransport(vrphttp.NewMockTransport(nil)))
	if err := run(context.Background(), c, "route", writeProblem(t), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
