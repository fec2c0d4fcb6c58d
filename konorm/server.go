package konorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"

	"github.com/Alfex4936/konorm/internal/metrics"
	"github.com/Alfex4936/konorm/internal/util"
)

const (
	defaultMaxBytes = 1 << 20 // 1 MiB
	defaultTimeout  = 5 * time.Second
	maxTimeoutSec   = 60
)

// NormalizeRequest is the HTTP request body for /v1/normalize
type NormalizeRequest struct {
	Text    string   `json:"text"`              // 정규화할 텍스트 (필수)
	Words   []string `json:"words,omitempty"`   // 인라인 사용자 명사 (선택)
	Dict    *Dict    `json:"dict,omitempty"`    // 사용자 딕셔너리 {"nouns":[...],"typos":{...}} (선택)
	Explain bool     `json:"explain,omitempty"` // true면 재작성 내역(Result) 반환
	Timeout int      `json:"timeout,omitempty"` // 타임아웃 (초, 기본 5)
}

type NormalizeResponse struct {
	Normalized string `json:"normalized"`
}

// BatchRequest is the HTTP request body for /v1/normalize/batch
type BatchRequest struct {
	Texts   []string `json:"texts"`
	Words   []string `json:"words,omitempty"`
	Dict    *Dict    `json:"dict,omitempty"`
	Timeout int      `json:"timeout,omitempty"`
}

type BatchResponse struct {
	Normalized []string `json:"normalized"`
}

// Server exposes a Normalizer over HTTP.
type Server struct {
	norm     *Normalizer
	cache    *Cache
	log      *slog.Logger
	maxBytes int64
	timeout  time.Duration
}

type ServerOption func(*Server)

// WithCache serves requests without a user dictionary from c.
// c must wrap the same Normalizer the Server was built with.
func WithCache(c *Cache) ServerOption {
	return func(s *Server) { s.cache = c }
}

func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxBytes caps request bodies; larger ones get 413.
func WithMaxBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithDefaultTimeout is used when a request carries no timeout.
func WithDefaultTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewServer(n *Normalizer, opts ...ServerOption) *Server {
	s := &Server{
		norm:     n,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBytes: defaultMaxBytes,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full route table wrapped in request logging and metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/normalize", s.NormalizeHandler)
	mux.HandleFunc("/v1/normalize/batch", s.BatchHandler)
	mux.HandleFunc("/health", s.HealthHandler)
	mux.HandleFunc("/openapi.json", s.OpenAPIHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.DocsHandler)

	return metrics.Chain(mux, metrics.RequestLogger(s.log), metrics.Prometheus())
}

// NormalizeHandler handles POST /v1/normalize requests
func (s *Server) NormalizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NormalizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, ErrEmptyText.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout(req.Timeout))
	defer cancel()

	n := s.norm.WithDict(userDict(req.Words, req.Dict))
	metrics.TextsNormalized.Inc()

	if req.Explain {
		s.writeJSON(w, n.Explain(req.Text))
		return
	}

	var out string
	switch {
	case n == s.norm && s.cache != nil:
		var hit bool
		out, hit = s.cache.Lookup(req.Text)
		metrics.CacheLookups.WithLabelValues(lo.Ternary(hit, "hit", "miss")).Inc()
	default:
		var err error
		out, err = n.NormalizeParallel(ctx, req.Text)
		if err != nil {
			s.fail(w, err)
			return
		}
	}
	s.writeJSON(w, NormalizeResponse{Normalized: out})
}

// BatchHandler handles POST /v1/normalize/batch requests
func (s *Server) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		http.Error(w, ErrEmptyText.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout(req.Timeout))
	defer cancel()

	n := s.norm.WithDict(userDict(req.Words, req.Dict))
	out, err := n.NormalizeAll(ctx, req.Texts)
	if err != nil {
		s.fail(w, err)
		return
	}
	metrics.TextsNormalized.Add(float64(len(req.Texts)))
	s.writeJSON(w, BatchResponse{Normalized: out})
}

// HealthHandler handles GET /health requests
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"service": "konorm",
	}
	if s.cache != nil {
		body["cache"] = s.cache.Stats()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// OpenAPIHandler serves the OpenAPI 3.0 spec at GET /openapi.json
func (s *Server) OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

// DocsHandler serves the Redoc UI at GET /
func (s *Server) DocsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) requestTimeout(sec int) time.Duration {
	if sec > 0 {
		return time.Duration(min(sec, maxTimeoutSec)) * time.Second
	}
	return s.timeout
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		http.Error(w, "Normalize timed out", http.StatusGatewayTimeout)
		return
	}
	s.log.Error("normalize failed", "error", err)
	http.Error(w, fmt.Sprintf("Normalize failed: %v", err), http.StatusInternalServerError)
}

// JSON 응답 (HTML 이스케이프 비활성화)
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := util.WriteJSON(w, v, true); err != nil {
		s.log.Error("writing response", "error", err)
	}
}

// userDict merges inline words and a request dictionary; nil when both are empty.
func userDict(words []string, d *Dict) *Dict {
	if len(words) == 0 && d == nil {
		return nil
	}
	return NewDict(words...).Merge(d)
}

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "konorm API",
    "description": "구어체 한국어 정규화 REST API (ㅋ/ㅎ 받침 제거, 반복 축약, 서술격 조사 복원, 오타 교정)",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/normalize": {
      "post": {
        "summary": "Normalize",
        "description": "텍스트의 한글 구간을 정규화합니다. 한글이 아닌 부분은 그대로 유지됩니다.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/NormalizeRequest" },
              "examples": {
                "기본": {
                  "value": { "text": "안됔ㅋㅋㅋㅋㅋ 내 심장을 가격했엌ㅋㅋㅋㅋ" }
                },
                "사용자 명사": {
                  "value": { "text": "쵸킨데", "words": ["쵸키"] }
                },
                "재작성 내역": {
                  "value": { "text": "버슨가 보슨지", "explain": true }
                }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "정규화 결과 (explain=true면 Result)",
            "content": {
              "application/json": {
                "schema": {
                  "oneOf": [
                    { "$ref": "#/components/schemas/NormalizeResponse" },
                    { "$ref": "#/components/schemas/Result" }
                  ]
                },
                "example": { "normalized": "안돼ㅋㅋㅋ 내 심장을 가격했어ㅋㅋㅋ" }
              }
            }
          },
          "400": { "description": "잘못된 요청 (JSON 파싱 오류, 빈 텍스트)" },
          "413": { "description": "요청 본문이 너무 큼" },
          "504": { "description": "타임아웃" }
        }
      }
    },
    "/v1/normalize/batch": {
      "post": {
        "summary": "Normalize batch",
        "description": "여러 텍스트를 병렬로 정규화합니다. 결과 순서는 입력 순서와 같습니다.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/BatchRequest" },
              "example": { "texts": ["예뿌ㅠㅠ", "가쟝 용기있는 사람이 머굼 되는거즤"] }
            }
          }
        },
        "responses": {
          "200": {
            "description": "정규화 결과",
            "content": {
              "application/json": {
                "example": { "normalized": ["예뻐ㅠㅠ", "가장 용기있는 사람이 먹음 되는거지"] }
              }
            }
          },
          "400": { "description": "잘못된 요청" },
          "504": { "description": "타임아웃" }
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": {
          "200": {
            "description": "서비스 정상",
            "content": {
              "application/json": {
                "example": { "status": "ok", "service": "konorm" }
              }
            }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "NormalizeRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text":    { "type": "string", "description": "정규화할 텍스트 (필수)" },
          "words":   { "type": "array", "items": { "type": "string" }, "description": "명사로 취급할 단어 (인라인)", "example": ["쵸키"] },
          "dict":    { "$ref": "#/components/schemas/Dict" },
          "explain": { "type": "boolean", "description": "재작성 내역 포함 여부" },
          "timeout": { "type": "integer", "description": "타임아웃 (초, 기본 5)", "example": 5 }
        }
      },
      "BatchRequest": {
        "type": "object",
        "required": ["texts"],
        "properties": {
          "texts":   { "type": "array", "items": { "type": "string" } },
          "words":   { "type": "array", "items": { "type": "string" } },
          "dict":    { "$ref": "#/components/schemas/Dict" },
          "timeout": { "type": "integer" }
        }
      },
      "Dict": {
        "type": "object",
        "properties": {
          "nouns": { "type": "array", "items": { "type": "string" }, "description": "명사로 취급할 단어" },
          "typos": { "type": "object", "additionalProperties": { "type": "string" }, "description": "오타 → 교정어" }
        }
      },
      "NormalizeResponse": {
        "type": "object",
        "properties": {
          "normalized": { "type": "string" }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "original":     { "type": "string", "description": "원본 텍스트" },
          "normalized":   { "type": "string", "description": "정규화 결과" },
          "editDistance": { "type": "integer", "description": "Levenshtein(original, normalized)" },
          "charCount":    { "type": "integer" },
          "chunkCount":   { "type": "integer", "description": "한글 구간 수" },
          "rewriteCount": { "type": "integer" },
          "rewrites":     { "type": "array", "items": { "$ref": "#/components/schemas/Rewrite" } }
        }
      },
      "Rewrite": {
        "type": "object",
        "properties": {
          "idx":        { "type": "integer", "description": "한글 구간 번호" },
          "start":      { "type": "integer", "description": "시작 위치 (rune)" },
          "end":        { "type": "integer", "description": "끝 위치 (rune)" },
          "origin":     { "type": "string" },
          "normalized": { "type": "string" },
          "distance":   { "type": "integer" },
          "rules":      { "type": "array", "items": { "type": "string" }, "description": "적용된 규칙 (ending, repeat-char, repeat-2, repeat-3, coda-n, typo, whitespace)" }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>konorm API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link href="https://fonts.googleapis.com/css?family=Montserrat:300,400,700|Roboto:300,400,700" rel="stylesheet">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
