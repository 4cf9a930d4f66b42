package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/graphauth/graphauth/internal/application/auth"
	"github.com/graphauth/graphauth/internal/domain"
	"github.com/graphauth/graphauth/internal/infrastructure/security"
	"github.com/graphauth/graphauth/internal/logger"
	"github.com/graphauth/graphauth/internal/metrics"
)

// userView is the only user shape ever exposed through the API.
type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toView(u domain.User) userView {
	return userView{ID: u.ID, Email: u.Email}
}

// Root holds the resolver dependencies: the auth service and the session
// cookie writer.
type Root struct {
	svc     *auth.Service
	cookies security.CookieWriter
}

func NewRoot(svc *auth.Service, cookies security.CookieWriter) *Root {
	return &Root{svc: svc, cookies: cookies}
}

// NewSchema builds the executable schema:
//
//	type User { id: ID!  email: String! }
//	type Query { me: User!  users: [User!]! }
//	type Mutation {
//	  login(loginInput): User!  logout: Boolean!
//	  register(registerInput): User!  changePassword(changePasswordInput): Boolean!
//	}
func NewSchema(root *Root) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	credentialFields := graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	}
	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "LoginInput",
		Fields: credentialFields,
	})
	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "RegisterInput",
		Fields: credentialFields,
	})
	changePasswordInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangePasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"oldPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"newPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: root.resolveMe,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: root.resolveUsers,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"loginInput": &graphql.ArgumentConfig{Type: loginInput},
				},
				Resolve: root.resolveLogin,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: root.resolveLogout,
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"registerInput": &graphql.ArgumentConfig{Type: registerInput},
				},
				Resolve: root.resolveRegister,
			},
			"changePassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"changePasswordInput": &graphql.ArgumentConfig{Type: changePasswordInput},
				},
				Resolve: root.resolveChangePassword,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func credentialsArg(p graphql.ResolveParams, name string) (email, password string, err error) {
	input, ok := p.Args[name].(map[string]any)
	if !ok {
		return "", "", domain.ErrMissingField(name)
	}
	email, _ = input["email"].(string)
	password, _ = input["password"].(string)
	return email, password, nil
}

func (r *Root) resolveMe(p graphql.ResolveParams) (any, error) {
	claim, ok := IdentityFrom(p.Context)
	if !ok {
		return nil, domain.ErrAuthFailed()
	}

	u, err := r.svc.Me(p.Context, claim)
	if err != nil {
		return nil, err
	}
	return toView(u), nil
}

func (r *Root) resolveUsers(p graphql.ResolveParams) (any, error) {
	users, err := r.svc.Users(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toView(u))
	}
	return out, nil
}

func (r *Root) resolveRegister(p graphql.ResolveParams) (any, error) {
	email, password, err := credentialsArg(p, "registerInput")
	if err != nil {
		return nil, err
	}

	res, err := r.svc.Register(p.Context, email, password)
	if err != nil {
		return nil, err
	}

	if w, ok := responseWriterFrom(p.Context); ok {
		r.cookies.Set(w, res.Token)
	}

	metrics.RecordRegistration()
	log := logger.WithCtx(p.Context)
	log.Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	return toView(res.User), nil
}

func (r *Root) resolveLogin(p graphql.ResolveParams) (any, error) {
	email, password, err := credentialsArg(p, "loginInput")
	if err != nil {
		return nil, err
	}

	res, err := r.svc.Login(p.Context, email, password)
	if err != nil {
		if domain.Is(err, "auth_failed") {
			metrics.RecordLoginFailed()
		}
		return nil, err
	}

	if w, ok := responseWriterFrom(p.Context); ok {
		r.cookies.Set(w, res.Token)
	}

	metrics.RecordLogin()
	log := logger.WithCtx(p.Context)
	log.Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	return toView(res.User), nil
}

func (r *Root) resolveChangePassword(p graphql.ResolveParams) (any, error) {
	claim, ok := IdentityFrom(p.Context)
	if !ok {
		return nil, domain.ErrAuthFailed()
	}

	input, ok := p.Args["changePasswordInput"].(map[string]any)
	if !ok {
		return nil, domain.ErrMissingField("changePasswordInput")
	}
	oldPw, _ := input["oldPassword"].(string)
	newPw, _ := input["newPassword"].(string)

	if err := r.svc.ChangePassword(p.Context, claim, oldPw, newPw); err != nil {
		return nil, err
	}

	log := logger.WithCtx(p.Context)
	log.Info().
		Str("user_id", claim.UserID).
		Msg("password_changed")

	return true, nil
}

func (r *Root) resolveLogout(p graphql.ResolveParams) (any, error) {
	if w, ok := responseWriterFrom(p.Context); ok {
		r.cookies.Clear(w)
	}
	return true, nil
}
