package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS parameters (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS companies (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	profile_filename TEXT NOT NULL DEFAULT '',
	profile          BLOB,
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	login        TEXT NOT NULL UNIQUE,
	email        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS members (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	work_email   TEXT NOT NULL DEFAULT '',
	work_phone   TEXT NOT NULL DEFAULT '',
	mobile_phone TEXT NOT NULL DEFAULT '',
	ai_profile   TEXT NOT NULL DEFAULT '',
	user_id      TEXT REFERENCES users(id) ON DELETE SET NULL,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);

CREATE TABLE IF NOT EXISTS projects (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	description     TEXT NOT NULL DEFAULT '',
	economic_notes  TEXT NOT NULL DEFAULT '',
	criticality     TEXT NOT NULL DEFAULT '',
	methodology     TEXT NOT NULL DEFAULT '',
	company_id      TEXT REFERENCES companies(id) ON DELETE SET NULL,
	manager_user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
	archived        INTEGER NOT NULL DEFAULT 0 CHECK(archived IN (0, 1)),
	sort_order      INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS project_members (
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	member_id  TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, member_id)
);

CREATE TABLE IF NOT EXISTS project_documents (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	filename   TEXT NOT NULL DEFAULT '',
	content    BLOB NOT NULL,
	doc_date   DATETIME NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_project_documents_owner ON project_documents(owner_id);

CREATE TABLE IF NOT EXISTS milestones (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(project_id, name)
);

CREATE TABLE IF NOT EXISTS todos (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open', 'complete')),
	priority         INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
	due_date         DATETIME,
	sort_order       INTEGER NOT NULL DEFAULT 0,
	project_id       TEXT REFERENCES projects(id) ON DELETE CASCADE,
	milestone_id     TEXT REFERENCES milestones(id) ON DELETE SET NULL,
	assignee_user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	completed_at     DATETIME,
	updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_todos_project_id ON todos(project_id);
CREATE INDEX IF NOT EXISTS idx_todos_milestone_id ON todos(milestone_id);
CREATE INDEX IF NOT EXISTS idx_todos_sort_order ON todos(sort_order);

CREATE TABLE IF NOT EXISTS todo_documents (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	filename   TEXT NOT NULL DEFAULT '',
	content    BLOB NOT NULL,
	doc_date   DATETIME NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_todo_documents_owner ON todo_documents(owner_id);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	color      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_tags (
	todo_id TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (todo_id, tag_id)
);

CREATE TABLE IF NOT EXISTS project_tags (
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	tag_id     TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, tag_id)
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id         TEXT PRIMARY KEY,
	todo_id    TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	text       TEXT NOT NULL,
	checked    INTEGER NOT NULL DEFAULT 0 CHECK(checked IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_todo_id ON checklist_items(todo_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL,
	action      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	message     TEXT NOT NULL,
	read        INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_project ON notifications(project_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
