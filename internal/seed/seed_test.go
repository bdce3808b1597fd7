package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/daedaly/internal/seed"
	"github.com/nhle/daedaly/tests/testutil"
)

const projectSeed = `
company:
  id: acme
  name: Acme
  profile: acme.txt
project:
  id: portal
  name: Portal
  methodology: Scrum
  manager: anna
team:
  - key: mario
    name: Mario Rossi
    work_email: m.rossi@x.com
    profile: Backend developer
    login: mrossi
  - key: anna
    name: Anna Bianchi
    login: abianchi
  - key: luca
    name: Luca Neri
documents:
  - name: Kickoff
    path: docs/kickoff.txt
    date: 2025-02-03
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImportProject(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "portal.yaml"), projectSeed)
	writeFile(t, filepath.Join(dir, "acme.txt"), "Acme builds portals.")
	writeFile(t, filepath.Join(dir, "docs", "kickoff.txt"), "Kickoff notes")

	s := testutil.NewTestStore(t)
	f, err := seed.LoadProject(filepath.Join(dir, "portal.yaml"))
	require.NoError(t, err)

	sum, err := seed.NewImporter(s).ImportProject(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{ProjectID: "portal", Members: 3, Users: 2, Documents: 1}, sum)

	project, err := s.GetProjectByID(ctx, "portal")
	require.NoError(t, err)
	assert.Equal(t, "scrum", project.Methodology)
	require.NotNil(t, project.CompanyID)
	require.NotNil(t, project.ManagerUserID)

	company, err := s.GetCompanyByID(ctx, *project.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "acme.txt", company.ProfileFilename)
	assert.Equal(t, "Acme builds portals.", string(company.Profile))

	team, err := s.GetProjectTeam(ctx, "portal")
	require.NoError(t, err)
	var names []string
	for _, m := range team {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Luca Neri", "Mario Rossi"}, names, "the manager is not staffed on the team")

	managers, err := s.GetMembersForUsers(ctx, []string{*project.ManagerUserID})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Anna Bianchi", managers[0].Name)

	docs, err := s.GetProjectDocuments(ctx, "portal")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "kickoff.txt", docs[0].Filename)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), docs[0].DocDate.UTC())
}

func TestImportProjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "missing name", content: "project:\n  id: x\n", wantErr: "project name is required"},
		{name: "unknown manager", content: "project:\n  name: X\n  manager: ghost\n", wantErr: `manager "ghost" is not a team key`},
		{name: "manager without login", content: "project:\n  name: X\n  manager: a\nteam:\n  - key: a\n    name: A\n", wantErr: "has no login"},
		{name: "bad yaml", content: "project: [", wantErr: "parsing seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			writeFile(t, path, tt.content)

			f, err := seed.LoadProject(path)
			if err == nil {
				_, err = seed.NewImporter(testutil.NewTestStore(t)).ImportProject(context.Background(), f)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImportMembersAndDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := testutil.NewTestStore(t)
	im := seed.NewImporter(s)

	writeFile(t, filepath.Join(dir, "p.yaml"), "project:\n  id: p1\n  name: P1\n")
	f, err := seed.LoadProject(filepath.Join(dir, "p.yaml"))
	require.NoError(t, err)
	_, err = im.ImportProject(ctx, f)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "members.yaml"), "- name: Sara Verdi\n  login: sverdi\n- name: Paolo Blu\n")
	members, err := seed.LoadMembers(filepath.Join(dir, "members.yaml"))
	require.NoError(t, err)
	sum, err := im.ImportMembers(ctx, "p1", members)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Members)
	assert.Equal(t, 1, sum.Users)

	team, err := s.GetProjectTeam(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, team, 2)

	docPath := filepath.Join(dir, "brief.txt")
	writeFile(t, docPath, "brief")
	require.NoError(t, im.ImportDocument(ctx, seed.OwnerProject, "p1",
		seed.Document{Name: "Brief", Path: docPath, Date: "2025-01-10"}))
	docs, err := s.GetProjectDocuments(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Brief", docs[0].Name)

	err = im.ImportDocument(ctx, seed.OwnerProject, "p1", seed.Document{Name: "x", Path: docPath, Date: "10/01/2025"})
	assert.ErrorContains(t, err, "invalid date")
}
