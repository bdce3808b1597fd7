// Package seed imports projects, team members and documents from YAML
// files into the store.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nhle/daedaly/internal/model"
)

// Store is the part of the entity store the importer writes to.
type Store interface {
	CreateCompany(ctx context.Context, company model.Company) error
	CreateUser(ctx context.Context, user model.User) error
	CreateMember(ctx context.Context, member model.Member) error
	CreateProject(ctx context.Context, project model.Project) error
	AddProjectMember(ctx context.Context, projectID, memberID string) error
	AddProjectDocument(ctx context.Context, doc model.Document) error
	AddTodoDocument(ctx context.Context, doc model.Document) error
}

// Company is a company entry. Profile is a file path, relative to the
// seed file.
type Company struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
}

// Member is a team member, optionally with a login account.
type Member struct {
	Key         string `yaml:"key"`
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	WorkEmail   string `yaml:"work_email"`
	WorkPhone   string `yaml:"work_phone"`
	MobilePhone string `yaml:"mobile_phone"`
	Profile     string `yaml:"profile"`
	Login       string `yaml:"login"`
	Email       string `yaml:"email"`
}

// Document is a file to attach. Path is relative to the seed file.
type Document struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Date string `yaml:"date"`
}

// Project is a project entry. Manager names a member key of the same
// file; that member needs a login.
type Project struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Methodology string `yaml:"methodology"`
	Manager     string `yaml:"manager"`
}

// ProjectFile is the layout of a project seed file.
type ProjectFile struct {
	Company   *Company   `yaml:"company"`
	Project   Project    `yaml:"project"`
	Team      []Member   `yaml:"team"`
	Documents []Document `yaml:"documents"`

	dir string
}

// Summary reports what an import created.
type Summary struct {
	ProjectID string
	Members   int
	Users     int
	Documents int
}

// LoadProject reads a project seed file.
func LoadProject(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	var f ProjectFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed %s: %w", path, err)
	}
	if strings.TrimSpace(f.Project.Name) == "" {
		return nil, fmt.Errorf("seed %s: project name is required", path)
	}
	f.dir = filepath.Dir(path)
	return &f, nil
}

// LoadMembers reads a YAML list of members.
func LoadMembers(path string) ([]Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	var members []Member
	if err := yaml.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("parsing seed %s: %w", path, err)
	}
	return members, nil
}

// Importer writes seed data through a Store.
type Importer struct {
	store Store
}

// NewImporter creates an Importer.
func NewImporter(store Store) *Importer {
	return &Importer{store: store}
}

// ImportProject creates the company, team, project and documents of f.
func (im *Importer) ImportProject(ctx context.Context, f *ProjectFile) (Summary, error) {
	var sum Summary
	project := model.Project{
		ID:          orNewID(f.Project.ID),
		Name:        f.Project.Name,
		Methodology: strings.ToLower(strings.TrimSpace(f.Project.Methodology)),
	}

	if f.Company != nil {
		company, err := im.company(*f.Company, f.dir)
		if err != nil {
			return sum, err
		}
		if err := im.store.CreateCompany(ctx, company); err != nil {
			return sum, err
		}
		project.CompanyID = &company.ID
	}

	members := make(map[string]model.Member, len(f.Team))
	var order []model.Member
	for _, m := range f.Team {
		member, created, err := im.member(ctx, m)
		if err != nil {
			return sum, err
		}
		if created {
			sum.Users++
		}
		sum.Members++
		if m.Key != "" {
			members[m.Key] = member
		}
		order = append(order, member)
	}

	if key := strings.TrimSpace(f.Project.Manager); key != "" {
		manager, ok := members[key]
		if !ok {
			return sum, fmt.Errorf("manager %q is not a team key", key)
		}
		if manager.UserID == nil {
			return sum, fmt.Errorf("manager %q has no login", key)
		}
		project.ManagerUserID = manager.UserID
	}

	if err := im.store.CreateProject(ctx, project); err != nil {
		return sum, err
	}
	sum.ProjectID = project.ID

	for _, m := range order {
		// The manager is reached through the project, not the team.
		if project.ManagerUserID != nil && m.UserID != nil && *m.UserID == *project.ManagerUserID {
			continue
		}
		if err := im.store.AddProjectMember(ctx, project.ID, m.ID); err != nil {
			return sum, err
		}
	}

	for _, d := range f.Documents {
		doc, err := readDocument(d, f.dir)
		if err != nil {
			return sum, err
		}
		doc.OwnerID = project.ID
		if err := im.store.AddProjectDocument(ctx, doc); err != nil {
			return sum, err
		}
		sum.Documents++
	}
	return sum, nil
}

// ImportMembers creates members and, when projectID is set, staffs them
// on that project.
func (im *Importer) ImportMembers(ctx context.Context, projectID string, members []Member) (Summary, error) {
	sum := Summary{ProjectID: projectID}
	for _, m := range members {
		member, created, err := im.member(ctx, m)
		if err != nil {
			return sum, err
		}
		if created {
			sum.Users++
		}
		sum.Members++
		if projectID == "" {
			continue
		}
		if err := im.store.AddProjectMember(ctx, projectID, member.ID); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// Owner selects what a document is attached to.
type Owner int

const (
	OwnerProject Owner = iota
	OwnerTask
)

// ImportDocument attaches the file at path to a project or a task.
func (im *Importer) ImportDocument(ctx context.Context, owner Owner, ownerID string, d Document) error {
	doc, err := readDocument(d, "")
	if err != nil {
		return err
	}
	doc.OwnerID = ownerID
	if owner == OwnerTask {
		return im.store.AddTodoDocument(ctx, doc)
	}
	return im.store.AddProjectDocument(ctx, doc)
}

func (im *Importer) company(c Company, dir string) (model.Company, error) {
	company := model.Company{ID: orNewID(c.ID), Name: c.Name}
	if c.Profile == "" {
		return company, nil
	}
	path := resolve(dir, c.Profile)
	data, err := os.ReadFile(path)
	if err != nil {
		return company, fmt.Errorf("reading company profile %s: %w", path, err)
	}
	company.ProfileFilename = filepath.Base(path)
	company.Profile = data
	return company, nil
}

// member creates m and its user account when a login is given. The
// boolean reports whether a user was created.
func (im *Importer) member(ctx context.Context, m Member) (model.Member, bool, error) {
	member := model.Member{
		ID:          orNewID(m.ID),
		Name:        m.Name,
		DisplayName: m.DisplayName,
		WorkEmail:   m.WorkEmail,
		WorkPhone:   m.WorkPhone,
		MobilePhone: m.MobilePhone,
		AIProfile:   m.Profile,
	}

	created := false
	if login := strings.TrimSpace(m.Login); login != "" {
		user := model.User{
			ID:          uuid.New().String(),
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Login:       login,
			Email:       m.Email,
		}
		if err := im.store.CreateUser(ctx, user); err != nil {
			return member, false, err
		}
		member.UserID = &user.ID
		created = true
	}

	if err := im.store.CreateMember(ctx, member); err != nil {
		return member, created, err
	}
	return member, created, nil
}

func readDocument(d Document, dir string) (model.Document, error) {
	path := resolve(dir, d.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc := model.Document{
		ID:       uuid.New().String(),
		Name:     d.Name,
		Filename: filepath.Base(path),
		Content:  data,
	}
	if d.Date != "" {
		date, err := time.Parse(time.DateOnly, d.Date)
		if err != nil {
			return doc, fmt.Errorf("document %s: invalid date %q: %w", path, d.Date, err)
		}
		doc.DocDate = date
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = doc.Filename
	}
	return doc, nil
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func orNewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
