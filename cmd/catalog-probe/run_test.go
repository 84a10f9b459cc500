package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func fakeService() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/random-entries", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`[1,2]`)) })
	mux.HandleFunc("/unauthorized", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusUnauthorized) })
	mux.HandleFunc("/not-found", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	mux.HandleFunc("/scores", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("[]\n")) })
	return httptest.NewServer(mux)
}

func TestRunCommand(t *testing.T) {
	Convey("Given a service that satisfies every check", t, func() {
		srv := fakeService()
		defer srv.Close()

		var out, errOut bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)

		Convey("When running the probe", func() {
			rootCmd.SetArgs([]string{"run", "--url", srv.URL, "--iterations", "3", "--timeout", "1s"})
			err := rootCmd.Execute()

			Convey("Then it passes and prints a summary", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldStartWith, "PASS")
				So(out.String(), ShouldContainSubstring, "samples=3")
			})
		})

		Convey("When the expected sample size is smaller than served", func() {
			rootCmd.SetArgs([]string{"run", "--url", srv.URL, "--iterations", "1", "--sample-size", "1"})
			err := rootCmd.Execute()

			Convey("Then it fails and lists the violation", func() {
				So(err, ShouldNotBeNil)
				So(out.String(), ShouldStartWith, "FAIL")
				So(out.String(), ShouldContainSubstring, "want at most 1")
			})
		})
	})
}
