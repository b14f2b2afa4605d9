package main

import (
	"io"
	"net/http"
	"os"
	"strings"
)

// serveFile answers with a canned OTA XML response. Requests without a
// body or with the wrong method get the errors a real supplier returns.
func serveFile(w http.ResponseWriter, r *http.Request, file string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Empty request body", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile("mock/files/" + file)
	if err != nil {
		http.Error(w, "Failed to read response data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(data)
}

func ProductHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, "product_response.xml")
}

func SearchHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, "search_response.xml")
}

func DescriptiveInfoHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, "descriptiveinfo_response.xml")
}

// AvailHandler answers with an empty-availability error for departure
// airports the canned dataset has no offers for.
func AvailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Empty request body", http.StatusBadRequest)
		return
	}

	file := "avail_empty_response.xml"
	if strings.Contains(string(body), `DepartureLocation="MXP"`) {
		file = "avail_response.xml"
	}

	data, err := os.ReadFile("mock/files/" + file)
	if err != nil {
		http.Error(w, "Failed to read response data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(data)
}

func ResHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, r, "res_response.xml")
}
