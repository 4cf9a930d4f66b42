package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/graphauth/graphauth/internal/application/auth"
	"github.com/graphauth/graphauth/internal/domain"
	"github.com/graphauth/graphauth/internal/infrastructure/security"
)

// TokenVerifier is the slice of the token service the transport needs.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Handler serves GraphQL over POST. Before executing an operation it
// resolves the session cookie into an identity exactly once:
//
//	no cookie                     -> unauthenticated
//	cookie with a valid token     -> authenticated claim in context
//	cookie with an invalid token  -> unauthenticated
//
// Failures never surface as transport errors; resolvers see only presence
// or absence of the identity.
type Handler struct {
	schema   graphql.Schema
	verifier TokenVerifier
}

func NewHandler(root *Root, verifier TokenVerifier) (*Handler, error) {
	schema, err := NewSchema(root)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema, verifier: verifier}, nil
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, response{Errors: []responseError{formatErrorFromDomain(domain.ErrInvalidJSON(err))}})
		return
	}

	ctx := r.Context()
	if raw, err := security.ReadAuthToken(r); err == nil {
		if claim, err := h.verifier.Verify(raw); err == nil {
			ctx = WithIdentity(ctx, claim)
		}
	}
	ctx = withResponseWriter(ctx, w)

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	writeJSON(w, formatResult(result))
}

func writeJSON(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func formatErrorFromDomain(err *domain.Error) responseError {
	return responseError{
		Message:    err.Message,
		Extensions: map[string]any{"code": codeBadUserInput},
	}
}
