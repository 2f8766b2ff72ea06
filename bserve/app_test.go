package bserve_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/advdv/bresp"
	"github.com/advdv/bresp/bserve"
	"github.com/advdv/bresp/bserve/bservetest"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/carlmjohnson/requests"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

// Handlers receives app-scoped dependencies through fx.
type Handlers struct {
	rt *bserve.Runtime[bserve.BaseEnvironment]
}

func NewHandlers(rt *bserve.Runtime[bserve.BaseEnvironment]) *Handlers {
	return &Handlers{rt: rt}
}

func (h *Handlers) GetItem(ctx context.Context, r *http.Request) (bresp.Response, error) {
	self, err := h.rt.Reverse("get-item", r.PathValue("id"))
	if err != nil {
		return nil, err
	}

	bserve.Log(ctx).Info("get item")

	return bresp.NewJSON(map[string]any{
		"id":      r.PathValue("id"),
		"self":    self,
		"service": h.rt.Env().ServiceName,
		"traced":  bserve.Span(ctx).SpanContext().IsValid(),
	})
}

func (h *Handlers) Legacy(context.Context, *http.Request) (bresp.Response, error) {
	url, err := h.rt.Reverse("get-item", "42")
	if err != nil {
		return nil, err
	}

	return nil, bresp.Redirect(url)
}

func routing(m *bserve.Mux, h *Handlers) {
	m.HandleFunc("GET /items/{id}", h.GetItem, "get-item")
	m.HandleFunc("GET /legacy", h.Legacy)
}

func start(t *testing.T, port int, opts ...bserve.Option) string {
	t.Helper()

	opts = append(opts, bserve.WithFx(fx.Provide(NewHandlers)))
	app := bservetest.New[bserve.BaseEnvironment](t, routing, opts...)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	base := "http://localhost:" + strconv.Itoa(port)
	require.Eventually(t, func() bool {
		return requests.URL(base).Path("/health").Fetch(t.Context()) == nil
	}, 5*time.Second, 20*time.Millisecond)

	return base
}

func TestAppServesHandlers(t *testing.T) {
	bservetest.SetBaseEnv(t, 18181).ServiceName("orders")
	base := start(t, 18181)

	t.Run("json", func(t *testing.T) {
		var body string
		headers := http.Header{}
		require.NoError(t, requests.URL(base).
			Path("/items/abc").
			CopyHeaders(headers).
			ToString(&body).
			Fetch(t.Context()))

		require.Equal(t, "abc", gjson.Get(body, "id").String())
		require.Equal(t, "/items/abc", gjson.Get(body, "self").String())
		require.Equal(t, "orders", gjson.Get(body, "service").String())
		require.True(t, gjson.Get(body, "traced").Bool())
		require.Contains(t, headers.Get("Content-Type"), "application/json")
		require.Equal(t, "bresp", headers.Get("X-Powered-By"))
	})

	t.Run("redirect", func(t *testing.T) {
		headers := http.Header{}
		client := &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}

		require.NoError(t, requests.URL(base).
			Path("/legacy").
			Client(client).
			CheckStatus(http.StatusFound).
			CopyHeaders(headers).
			Fetch(t.Context()))
		require.Equal(t, "/items/42", headers.Get("Location"))
	})

	t.Run("not found", func(t *testing.T) {
		var body string
		require.NoError(t, requests.URL(base).
			Path("/nope").
			CheckStatus(http.StatusNotFound).
			ToString(&body).
			Fetch(t.Context()))
	})
}

func TestAppCustomReadiness(t *testing.T) {
	bservetest.SetBaseEnv(t, 18183).ReadinessPath("/ready")

	app := bservetest.New[bserve.BaseEnvironment](t, func(*bserve.Mux) {},
		bserve.WithReadinessHandler(func(context.Context, *http.Request) (bresp.Response, error) {
			return bresp.NewText("ok")
		}))
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	var body string
	require.Eventually(t, func() bool {
		return requests.URL("http://localhost:18183/ready").ToString(&body).Fetch(t.Context()) == nil
	}, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, "ok", body)
}

func TestAppStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello, world"), 0o600))

	bservetest.SetBaseEnv(t, 18184).StaticDir(dir)
	base := start(t, 18184)

	var body string
	require.NoError(t, requests.URL(base).Path("/static/hello.txt").ToString(&body).Fetch(t.Context()))
	require.Equal(t, "hello, world", body)

	require.NoError(t, requests.URL(base).
		Path("/static/missing.txt").
		CheckStatus(http.StatusNotFound).
		Fetch(t.Context()))
}

func TestAppS3Objects(t *testing.T) {
	bservetest.SetBaseEnv(t, 18185).S3Bucket("assets")

	var client *s3.Client
	base := start(t, 18185, bserve.WithS3Objects(), bserve.WithFx(fx.Populate(&client)))
	require.NotNil(t, client)
	require.Equal(t, "us-east-1", client.Options().Region)

	// The directory listing is answered before the bucket is contacted.
	require.NoError(t, requests.URL(base).
		Path("/objects/").
		CheckStatus(http.StatusNotFound).
		Fetch(t.Context()))
}

func TestAppAWSClientRegion(t *testing.T) {
	bservetest.SetBaseEnv(t, 18186)

	var client *s3.Client
	start(t, 18186,
		bserve.WithAWSClient(func(cfg aws.Config) *s3.Client { return s3.NewFromConfig(cfg) },
			bserve.ForRegion("eu-central-1")),
		bserve.WithFx(fx.Populate(&client)))

	require.Equal(t, "eu-central-1", client.Options().Region)
}

func TestRuntimeNewRequest(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(upstream.Close)

	rt := bserve.NewRuntime(bserve.BaseEnvironment{ServiceName: "svc"}, bresp.NewServeMux(), nil)
	require.Equal(t, "svc", rt.Env().ServiceName)

	var out struct {
		Path string `json:"path"`
	}
	require.NoError(t, rt.NewRequest(upstream.URL).Path("/v1/ping").ToJSON(&out).Fetch(t.Context()))
	require.Equal(t, "/v1/ping", out.Path)
}
