package git

// MockOperations returns canned results for tests.
type MockOperations struct {
	RootPath    string
	Branch      string
	Changes     []FileChange
	StatusValue *Status
	Commits     []Commit
	CoChanges   []CoChange
	HotDirs     []HotDirectory
	Activity    []FileActivity
	Err         error
}

var _ Operations = (*MockOperations)(nil)

func (m *MockOperations) Root(path string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.RootPath != "" {
		return m.RootPath, nil
	}
	return path, nil
}

func (m *MockOperations) CurrentBranch(path string) string {
	if m.Branch == "" {
		return "main"
	}
	return m.Branch
}

func (m *MockOperations) ChangedFiles(path, ref string) ([]FileChange, error) {
	return m.Changes, m.Err
}

func (m *MockOperations) Status(path string) (*Status, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.StatusValue, nil
}

func (m *MockOperations) RecentCommits(path string, n int) ([]Commit, error) {
	return m.Commits, m.Err
}

func (m *MockOperations) CoChangedFiles(path, file string, limit int) ([]CoChange, error) {
	return m.CoChanges, m.Err
}

func (m *MockOperations) HotDirectories(path string, days int) ([]HotDirectory, error) {
	return m.HotDirs, m.Err
}

func (m *MockOperations) RecentFileActivity(path string, n int) ([]FileActivity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Activity) > n {
		return m.Activity[:n], nil
	}
	return m.Activity, nil
}
