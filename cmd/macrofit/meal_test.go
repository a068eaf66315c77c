package macrofit

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func loggedEntryID(t *testing.T, output string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if id, ok := strings.CutPrefix(line, "Entry ID: "); ok {
			return strings.TrimSpace(id)
		}
	}
	t.Fatalf("no entry id in output:\n%s", output)
	return ""
}

func TestMealEditCheatHonorsQuota(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macrofit.db")

	// Default quota is two cheat meals per week; exhaust it.
	for i := 0; i < 2; i++ {
		if out, err := runCmd(t, "--db", path, "meal", "log", "--meal", "Lunch", "--cheat",
			"--food", "chicken-breast:100"); err != nil {
			t.Fatalf("log cheat meal %d: %v\n%s", i+1, err, out)
		}
	}

	out, err := runCmd(t, "--db", path, "meal", "log", "--meal", "Dinner", "--cheat=false",
		"--food", "brown-rice:200")
	if err != nil {
		t.Fatalf("log regular meal: %v\n%s", err, out)
	}
	entryID := loggedEntryID(t, out)

	if _, err := runCmd(t, "--db", path, "meal", "edit", entryID, "--cheat"); err == nil {
		t.Fatalf("expected quota error when flipping an entry to cheat")
	}
	if out, err := runCmd(t, "--db", path, "meal", "edit", entryID, "--cheat", "--force"); err != nil {
		t.Fatalf("edit --cheat --force: %v\n%s", err, out)
	}

	// An entry that is already a cheat meal can be re-edited without
	// tripping the gate.
	if out, err := runCmd(t, "--db", path, "meal", "edit", entryID, "--cheat", "--force=false",
		"--food", "oats:50"); err != nil {
		t.Fatalf("re-edit cheat entry: %v\n%s", err, out)
	}
}

func TestMealLogAndEditFoodFlagsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macrofit.db")

	out, err := runCmd(t, "--db", path, "meal", "log", "--meal", "Breakfast", "--cheat=false",
		"--food", "oats:80", "--food", "banana:120")
	if err != nil {
		t.Fatalf("log meal: %v\n%s", err, out)
	}
	entryID := loggedEntryID(t, out)

	// Editing with its own --food list must not pick up the log command's
	// accumulated values.
	if out, err := runCmd(t, "--db", path, "meal", "edit", entryID, "--food", "salmon:150"); err != nil {
		t.Fatalf("edit foods: %v\n%s", err, out)
	}

	listOut, err := runCmd(t, "--db", path, "meal", "list")
	if err != nil {
		t.Fatalf("meal list: %v", err)
	}
	if !strings.Contains(listOut, entryID) {
		t.Fatalf("edited entry missing from list:\n%s", listOut)
	}
}
