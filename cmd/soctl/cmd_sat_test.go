package main

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

func TestSessionRows(t *testing.T) {
	content := gjson.Get(`{"content":[
		{"id":"y1564-1","name":"turnup-nyc","status":"Completed","testType":"Y1564"},
		{"id":"y1564-2","status":"Running"}
	]}`, "content").Array()

	rows := sessionRows(content)
	want := []sessionRow{
		{ID: "y1564-1", Name: "turnup-nyc", Status: "Completed", Type: "Y1564"},
		{ID: "y1564-2", Name: "N/A", Status: "Running", Type: "N/A"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("sessionRows = %+v, want %+v", rows, want)
	}
}

func TestOrNA(t *testing.T) {
	if got := orNA(""); got != "N/A" {
		t.Errorf("orNA(\"\") = %q", got)
	}
	if got := orNA("running"); got != "running" {
		t.Errorf("orNA(\"running\") = %q", got)
	}
}
