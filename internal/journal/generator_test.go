package journal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"digestease/internal/client"
	"digestease/internal/models"
)

func TestGenerateScenario(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rapports", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","date":"2024-03-01","result":"ok"}]`))
	})
	mux.HandleFunc("/openai", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"2","date":"2024-03-02","result":"better"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	session := NewSession(&client.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}, nil, nil)
	if err := session.Activate(context.Background()); err != nil {
		t.Fatalf("activate: %v", err)
	}

	got, err := session.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != (models.Rapport{ID: "2", Date: "2024-03-02", Result: "better"}) {
		t.Fatalf("unexpected generated rapport %+v", got)
	}

	want := []models.Rapport{
		{ID: "1", Date: "2024-03-01", Result: "ok"},
		{ID: "2", Date: "2024-03-02", Result: "better"},
	}
	if list := session.Rapports.List(); !reflect.DeepEqual(list, want) {
		t.Fatalf("expected %+v, got %+v", want, list)
	}
}

func TestGenerateFailureLeavesStore(t *testing.T) {
	svc := &serviceStub{
		GenerateFunc: func(ctx context.Context) (models.Rapport, error) {
			return models.Rapport{}, &client.ServiceError{Op: "client.GenerateRapport", StatusCode: http.StatusInternalServerError}
		},
	}
	store := NewRapportStore(svc, nil)
	store.Append(models.Rapport{ID: "1", Date: "2024-03-01", Result: "ok"})
	gen := NewGenerator(svc, store, nil)

	_, err := gen.Generate(context.Background())

	var serr *client.ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected store unchanged, got %+v", store.List())
	}
}

func TestGenerateTwiceAppendsTwice(t *testing.T) {
	n := 0
	svc := &serviceStub{
		GenerateFunc: func(ctx context.Context) (models.Rapport, error) {
			n++
			return models.Rapport{ID: "same", Date: "2024-03-02", Result: "r"}, nil
		},
	}
	session := NewSession(svc, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := session.Generate(context.Background()); err != nil {
			t.Fatalf("generate %d: %v", i+1, err)
		}
	}

	if n != 2 {
		t.Fatalf("expected two requests, got %d", n)
	}
	if session.Rapports.Len() != 2 {
		t.Fatalf("expected two appended rapports, got %d", session.Rapports.Len())
	}
	if svc.listCalls != 0 {
		t.Fatalf("expected generate not to refetch, got %d list calls", svc.listCalls)
	}
}
