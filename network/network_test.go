package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/anisync/constant"
	"github.com/anisan-cli/anisync/fault"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/time/rate"
)

func TestClient(t *testing.T) {
	Convey("Given a test server", t, func() {
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			switch r.URL.Path {
			case "/denied":
				w.WriteHeader(http.StatusUnauthorized)
			case "/duplicate":
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte("already exists"))
			case "/broken":
				w.WriteHeader(http.StatusBadGateway)
			default:
				_, _ = w.Write([]byte("ok"))
			}
		}))
		defer server.Close()

		client := NewClient(rate.Inf, 0)
		get := func(path string) (*http.Response, error) {
			req, _ := http.NewRequest(http.MethodGet, server.URL+path, nil)
			return Do(client, "test", req)
		}

		Convey("It should identify itself", func() {
			resp, err := get("/")
			So(err, ShouldBeNil)
			So(Check("test", resp), ShouldBeNil)

			body, err := ReadAll("test", resp)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "ok")
			So(agent, ShouldEqual, constant.UserAgent)
		})

		Convey("Status codes should be classified", func() {
			for path, kind := range map[string]fault.Kind{
				"/denied":    fault.Auth,
				"/duplicate": fault.Rejected,
				"/broken":    fault.Transport,
			} {
				resp, err := get(path)
				So(err, ShouldBeNil)
				So(fault.KindOf(Check("test", resp)), ShouldEqual, kind)
			}
		})

		Convey("A rejection should quote the body", func() {
			resp, _ := get("/duplicate")
			So(Check("test", resp).Error(), ShouldContainSubstring, "already exists")
		})
	})

	Convey("An unreachable host should be a transport error", t, func() {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		req, _ := http.NewRequest(http.MethodGet, url, nil)
		_, err := Do(NewClient(rate.Inf, 0), "test", req)
		So(fault.Is(err, fault.Transport), ShouldBeTrue)
	})

	Convey("The limiter should honour the request context", t, func() {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := NewClient(rate.Every(time.Hour), 1)

		first, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := Do(client, "test", first)
		So(err, ShouldBeNil)
		resp.Body.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		second, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
		_, err = Do(client, "test", second)
		So(err, ShouldNotBeNil)
	})

	Convey("PerMinute should spread the budget", t, func() {
		So(PerMinute(60), ShouldEqual, rate.Every(time.Second))
	})
}
