package steps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"github.com/reading-tracker/backend/internal/application/adapter"
)

// registerDomainSteps registers steps that drive the reading tracker through
// its public API.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am registered and logged in as "([^"]*)"$`, iAmRegisteredAndLoggedInAs)
	ctx.Step(`^I log in as "([^"]*)"$`, iLogInAs)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^a book "([^"]*)" titled "([^"]*)" with (\d+) pages$`, aBookTitledWithPages)
	ctx.Step(`^I shelve book "([^"]*)" as entry "([^"]*)"$`, iShelveBookAsEntry)
	ctx.Step(`^I move entry "([^"]*)" to "([^"]*)"$`, iMoveEntryTo)
	ctx.Step(`^a goal "([^"]*)" named "([^"]*)" targeting (\d+) books due "([^"]*)"$`, aGoalNamedTargetingBooksDue)
	ctx.Step(`^goal "([^"]*)" should have progress (\d+) and status "([^"]*)"$`, goalShouldHaveProgressAndStatus)
	ctx.Step(`^the book search returns "([^"]*)" by "([^"]*)"$`, theBookSearchReturns)
	ctx.Step(`^the book search is unavailable$`, theBookSearchIsUnavailable)
}

const defaultTestPassword = "correct-horse-battery"

func iAmRegisteredAndLoggedInAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"email":%q,"name":"Test Reader","password":%q}`, email, defaultTestPassword)
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/register", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	token, err := tc.responseField("access_token")
	if err != nil {
		return err
	}
	tc.accessToken = fmt.Sprintf("%v", token)
	return nil
}

func iLogInAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, defaultTestPassword)
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/login", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	token, err := tc.responseField("access_token")
	if err != nil {
		return err
	}
	tc.accessToken = fmt.Sprintf("%v", token)
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return nil
}

func aBookTitledWithPages(ctx context.Context, alias, title string, pages int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"title":%q,"authors":["Test Author"],"page_count":%d}`, title, pages)
	if err := tc.doRequest(http.MethodPost, "/api/v1/books", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("book creation failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("id")
	if err != nil {
		return err
	}
	tc.capturedIDs[alias] = fmt.Sprintf("%v", id)
	return nil
}

func iShelveBookAsEntry(ctx context.Context, bookAlias, entryAlias string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"book_id":%q}`, tc.capturedIDs[bookAlias])
	if err := tc.doRequest(http.MethodPost, "/api/v1/entries", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("shelving failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("id")
	if err != nil {
		return err
	}
	tc.capturedIDs[entryAlias] = fmt.Sprintf("%v", id)
	return nil
}

func iMoveEntryTo(ctx context.Context, entryAlias, status string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"status":%q}`, status)
	endpoint := fmt.Sprintf("/api/v1/entries/%s/status", tc.capturedIDs[entryAlias])
	if err := tc.doRequest(http.MethodPut, endpoint, []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("status change failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func aGoalNamedTargetingBooksDue(ctx context.Context, alias, name string, target int, deadline string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"name":%q,"target_count":%d,"deadline_at":%q}`, name, target, deadline)
	if err := tc.doRequest(http.MethodPost, "/api/v1/goals", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("goal creation failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("id")
	if err != nil {
		return err
	}
	tc.capturedIDs[alias] = fmt.Sprintf("%v", id)
	return nil
}

func goalShouldHaveProgressAndStatus(ctx context.Context, alias string, expectedProgress int, expectedStatus string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	endpoint := fmt.Sprintf("/api/v1/goals/%s", tc.capturedIDs[alias])
	if err := tc.doRequest(http.MethodGet, endpoint, nil); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("goal fetch failed with status %d. Body: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	progressValue, err := tc.responseField("progress_count")
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", progressValue); actual != fmt.Sprintf("%d", expectedProgress) {
		return fmt.Errorf("goal %s expected progress %d, got %s. Body: %s", alias, expectedProgress, actual, string(tc.responseBody))
	}

	statusValue, err := tc.responseField("status")
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", statusValue); actual != expectedStatus {
		return fmt.Errorf("goal %s expected status %q, got %q", alias, expectedStatus, actual)
	}
	return nil
}

func theBookSearchReturns(ctx context.Context, title, author string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.searchService.err = nil
	tc.searchService.results = []adapter.BookSearchResult{
		{Title: title, Authors: []string{author}, PageCount: 320},
	}
	return nil
}

func theBookSearchIsUnavailable(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.searchService.results = nil
	tc.searchService.err = fmt.Errorf("catalog unreachable")
	return nil
}
