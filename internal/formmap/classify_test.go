package formmap

import (
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyperfill/formfill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SignupForm(t *testing.T) {
	html := `
		<html>
			<body>
				<form id="signup">
					<input type="hidden" name="csrf_token" value="x">
					<input type="text" id="first_name" placeholder="First name">
					<input type="text" name="last-name">
					<input type="email" id="email" name="email">
					<input type="email" name="confirm_email">
					<input type="password" id="pw" name="pwd">
					<input type="password" id="pw2" name="pwd_confirm">
					<input type="tel" name="phone">
					<select name="country"><option>US</option></select>
					<textarea name="about_you"></textarea>
					<input type="checkbox" name="newsletter">
					<input type="submit" name="email_submit" value="Go">
				</form>
			</body>
		</html>
	`

	result, err := Generate(html, "")
	require.NoError(t, err)
	assert.Nil(t, result.FormSelector)
	assert.Empty(t, result.Error)

	assert.Equal(t, types.Mapping{
		types.RoleFirstName:   "#first_name",
		types.RoleLastName:    `input[name="last-name"]`,
		types.RoleEmail:       "#email",
		types.RoleEmail2:      `input[name="confirm_email"]`,
		types.RolePassword:    "#pw",
		types.RolePassword2:   "#pw2",
		types.RolePhone:       `input[name="phone"]`,
		types.RoleCountry:     `select[name="country"]`,
		types.RoleDescription: `textarea[name="about_you"]`,
	}, result.Mappings)
}

func TestGenerate_ConfirmEmailPrecedence(t *testing.T) {
	orders := map[string]string{
		"email first":   `<input name="email"><input name="confirm_email">`,
		"confirm first": `<input name="confirm_email"><input name="email">`,
	}

	for name, html := range orders {
		t.Run(name, func(t *testing.T) {
			result, err := Generate(html, "")
			require.NoError(t, err)
			assert.Equal(t, `input[name="confirm_email"]`, result.Mappings[types.RoleEmail2])
			assert.Equal(t, `input[name="email"]`, result.Mappings[types.RoleEmail])
		})
	}
}

func TestGenerate_FirstDocumentOccurrenceWins(t *testing.T) {
	result, err := Generate(`<input name="email"><input name="user_email">`, "")
	require.NoError(t, err)

	assert.Equal(t, types.Mapping{types.RoleEmail: `input[name="email"]`}, result.Mappings)
}

func TestGenerate_CandidateWithoutSelectorDoesNotClaim(t *testing.T) {
	html := `<input placeholder="Email address"><input id="contact-email">`

	result, err := Generate(html, "")
	require.NoError(t, err)
	assert.Equal(t, "#contact-email", result.Mappings[types.RoleEmail])
}

func TestGenerate_InvalidIDFallsBackToName(t *testing.T) {
	result, err := Generate(`<input id="123bad" name="foo" placeholder="city">`, "")
	require.NoError(t, err)
	assert.Equal(t, `input[name="foo"]`, result.Mappings[types.RoleCity])
}

func TestGenerate_ScopeNotFound(t *testing.T) {
	result, err := Generate(`<form id="login"><input name="email"></form>`, "#missing")
	require.Error(t, err)

	var scopeErr *ScopeNotFoundError
	require.True(t, errors.As(err, &scopeErr))
	assert.Equal(t, "#missing", scopeErr.Selector)

	require.NotNil(t, result)
	assert.Empty(t, result.Mappings)
	assert.NotEmpty(t, result.Error)
	require.NotNil(t, result.FormSelector)
	assert.Equal(t, "#missing", *result.FormSelector)
}

func TestGenerate_InvalidSelectorIsScopeNotFound(t *testing.T) {
	result, err := Generate(`<input name="email">`, "form[")

	var scopeErr *ScopeNotFoundError
	assert.True(t, errors.As(err, &scopeErr))
	assert.Empty(t, result.Mappings)
}

func TestGenerate_ScopeLimitsCandidates(t *testing.T) {
	html := `
		<form id="search"><input name="email" placeholder="newsletter"></form>
		<form id="register">
			<input name="username">
			<input name="work_email">
		</form>
	`

	result, err := Generate(html, " #register ")
	require.NoError(t, err)
	require.NotNil(t, result.FormSelector)
	assert.Equal(t, "#register", *result.FormSelector)

	assert.Equal(t, types.Mapping{
		types.RoleUsername:  `input[name="username"]`,
		types.RoleWorkEmail: `input[name="work_email"]`,
	}, result.Mappings)
}

func TestGenerate_EmptyAndMalformedMarkup(t *testing.T) {
	for _, html := range []string{"", "<<<>>>", "<input", "<form><input name='email'"} {
		result, err := Generate(html, "")
		require.NoError(t, err, "markup %q", html)
		assert.NotNil(t, result.Mappings, "markup %q", html)
	}
}

func TestGenerate_NameEscaping(t *testing.T) {
	result, err := Generate(`<input name='my"phone\no'>`, "")
	require.NoError(t, err)
	assert.Equal(t, `input[name="my\"phone\\no"]`, result.Mappings[types.RolePhone])
}

func TestCandidates_SkipsNonFillableInputs(t *testing.T) {
	html := `
		<input type="hidden" name="a">
		<input type="SUBMIT" name="b">
		<input type="button" name="c">
		<input type="reset" name="d">
		<input type="image" name="e">
		<input type="file" name="f">
		<input name="g">
		<input type="radio" name="h">
		<textarea name="i"></textarea>
		<select name="j"></select>
	`
	doc, err := goquery.NewDocumentFromReader(stringsReader(html))
	require.NoError(t, err)

	candidates := Candidates(doc.Selection)
	names := make([]string, 0, len(candidates))
	for i, c := range candidates {
		assert.Equal(t, i, c.Position)
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"g", "h", "i", "j"}, names)
}

func TestCandidate_IdentifyingText(t *testing.T) {
	c := Candidate{Name: "Email", ID: "", Placeholder: "Your E-Mail", AriaLabel: "Contact"}
	assert.Equal(t, "email your e-mail contact", c.IdentifyingText())
}
