package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/OtaService/product", ProductHandler)
	http.HandleFunc("/OtaService/search", SearchHandler)
	http.HandleFunc("/OtaService/descriptiveinfo", DescriptiveInfoHandler)
	http.HandleFunc("/OtaService/avail", AvailHandler)
	http.HandleFunc("/OtaService/res", ResHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock OTA supplier running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
