// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDBQueryCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("replace", "catalog_titles"))

	ObserveDBQuery("replace", "catalog_titles", time.Now(), nil)
	ObserveDBQuery("replace", "catalog_titles", time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("replace", "catalog_titles"))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestObserveAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))

	ObserveAPIRequest("GET", "/api/v1/titles", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))
	if after-before != 1 {
		t.Errorf("request counter delta = %v, want 1", after-before)
	}
}

func TestObserveRun(t *testing.T) {
	before := testutil.ToFloat64(EnrichRunsTotal.WithLabelValues("success"))

	ObserveRun("success", time.Second, 1234)

	after := testutil.ToFloat64(EnrichRunsTotal.WithLabelValues("success"))
	if after-before != 1 {
		t.Errorf("run counter delta = %v, want 1", after-before)
	}
	if got := testutil.ToFloat64(LastRunRecords); got != 1234 {
		t.Errorf("LastRunRecords = %v, want 1234", got)
	}
}

func TestObserveRunErrorDoesNotTouchLastRun(t *testing.T) {
	ObserveRun("success", time.Second, 10)
	ObserveRun("error", time.Second, 0)

	if got := testutil.ToFloat64(LastRunRecords); got != 10 {
		t.Errorf("LastRunRecords = %v, want 10 (unchanged by failed run)", got)
	}
}
