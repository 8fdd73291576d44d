// File: internal/services/auth.go

package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/result"
)

// Authenticator performs the platform's login handshake. The session only
// depends on this interface.
type Authenticator interface {
	// Login submits creds and reports the resulting state.
	Login(ctx context.Context, t Transport, creds Credentials) result.Result[AuthState]
	// Probe reads the current token and login flag without changing them.
	Probe(ctx context.Context, t Transport) result.Result[AuthState]
}

// FormAuthenticator logs in through the forum's HTML login form
type FormAuthenticator struct {
	baseURL string
}

func NewFormAuthenticator(baseURL string) *FormAuthenticator {
	return &FormAuthenticator{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *FormAuthenticator) Login(ctx context.Context, t Transport, creds Credentials) result.Result[AuthState] {
	if creds.Username == "" || creds.Password == "" {
		return result.Failure[AuthState](result.NotAuthenticated("login", "username and password are required"))
	}

	loginPage := t.FetchHTML(ctx, a.baseURL+"/login/")
	if loginPage.IsFailure() {
		return result.Forward[AuthState](loginPage)
	}
	before := authStateOf(loginPage.Value())
	if before.IsFailure() {
		return before
	}

	form := url.Values{}
	form.Set("login", creds.Username)
	form.Set("password", creds.Password)
	form.Set("remember", "1")
	form.Set("_xfRedirect", a.baseURL+"/")
	form.Set("_xfToken", before.Value().Token)

	resp := t.PostForm(ctx, a.baseURL+"/login/login", form)
	if resp.IsFailure() {
		return result.Forward[AuthState](resp)
	}
	page := resp.Value()
	if !page.IsHTML() {
		return result.Failure[AuthState](result.UnexpectedContentType("login", "text/html", page.ContentType))
	}

	after := authStateOf(page)
	if after.IsFailure() {
		return after
	}
	if !after.Value().LoggedIn {
		return result.Failure[AuthState](result.NotAuthenticated("login", loginError(page)))
	}
	return after
}

func (a *FormAuthenticator) Probe(ctx context.Context, t Transport) result.Result[AuthState] {
	return result.Then(t.FetchHTML(ctx, a.baseURL+"/"), authStateOf)
}

// authStateOf reads the token and login flag every forum page carries on
// its <html> element
func authStateOf(p *Page) result.Result[AuthState] {
	return result.Then(p.Document(), func(doc *goquery.Document) result.Result[AuthState] {
		root := doc.Find("html").First()
		token, ok := root.Attr("data-csrf")
		if !ok || token == "" {
			token = doc.Find(`input[name="_xfToken"]`).First().AttrOr("value", "")
		}
		if token == "" {
			return result.Failure[AuthState](result.ParseFailuref("read auth state", "no csrf token on %s", p.URL))
		}
		return result.Success(AuthState{
			Token:    token,
			LoggedIn: root.AttrOr("data-logged-in", "") == "true",
		})
	})
}

func loginError(p *Page) string {
	doc := p.Document()
	if doc.IsFailure() {
		return "login rejected"
	}
	msg := strings.TrimSpace(doc.Value().Find(".blockMessage--error").First().Text())
	if msg == "" {
		return "login rejected"
	}
	return fmt.Sprintf("login rejected: %s", strings.Join(strings.Fields(msg), " "))
}
