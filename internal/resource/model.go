package resource

import (
	"fmt"
)

// DefaultRootPath is the part path of the root model in a 3MF package.
const DefaultRootPath = "/3D/3dmodel.model"

// Resource is anything registered in a Model.
type Resource interface {
	Model() *Model
	PackageResourceID() *PackageResourceID
}

// Dependent is implemented by resources that reference other resources and
// therefore must be written after them.
type Dependent interface {
	Dependencies() []*PackageResourceID
}

// Base carries the identity every resource embeds.
type Base struct {
	model *Model
	id    *PackageResourceID
}

// Model returns the owning model.
func (b *Base) Model() *Model { return b.model }

// PackageResourceID returns the resource's package id.
func (b *Base) PackageResourceID() *PackageResourceID { return b.id }

// ModelResourceID is a shortcut for the local id.
func (b *Base) ModelResourceID() ModelResourceID { return b.id.modelID }

// Model is the resource table of one package.
type Model struct {
	rootPath  string
	nextUID   UniqueResourceID
	ids       map[localKey]*PackageResourceID
	byUnique  map[UniqueResourceID]*PackageResourceID
	resources map[UniqueResourceID]Resource
	order     []Resource
}

// NewModel creates an empty model rooted at rootPath. An empty rootPath
// selects DefaultRootPath.
func NewModel(rootPath string) *Model {
	if rootPath == "" {
		rootPath = DefaultRootPath
	}
	return &Model{
		rootPath:  rootPath,
		nextUID:   1,
		ids:       make(map[localKey]*PackageResourceID),
		byUnique:  make(map[UniqueResourceID]*PackageResourceID),
		resources: make(map[UniqueResourceID]Resource),
	}
}

// Path is the root part path.
func (m *Model) Path() string { return m.rootPath }

// GenerateResourceID returns the lowest local id not yet used in path.
func (m *Model) GenerateResourceID(path string) ModelResourceID {
	id := ModelResourceID(1)
	for {
		if _, used := m.ids[localKey{path, id}]; !used {
			return id
		}
		id++
	}
}

// NewPackageResourceID reserves (path, localID). A zero localID picks a free one.
func (m *Model) NewPackageResourceID(path string, localID ModelResourceID) (*PackageResourceID, error) {
	if path == "" {
		path = m.rootPath
	}
	if localID == 0 {
		localID = m.GenerateResourceID(path)
	}
	key := localKey{path, localID}
	if _, exists := m.ids[key]; exists {
		return nil, &Error{Path: path, ID: localID, Err: ErrDuplicateResourceID}
	}
	pid := &PackageResourceID{path: path, modelID: localID, uniqueID: m.nextUID}
	m.nextUID++
	m.ids[key] = pid
	m.byUnique[pid.uniqueID] = pid
	return pid, nil
}

// NewBase reserves an id in the root path and returns the identity to embed
// in a new resource. The resource still has to be registered with Add.
func (m *Model) NewBase(localID ModelResourceID) (Base, error) {
	pid, err := m.NewPackageResourceID(m.rootPath, localID)
	if err != nil {
		return Base{}, err
	}
	return Base{model: m, id: pid}, nil
}

// Add registers r. The resource must have been created from this model's NewBase.
func (m *Model) Add(r Resource) error {
	if r.Model() != m {
		return ErrModelMismatch
	}
	pid := r.PackageResourceID()
	if m.byUnique[pid.uniqueID] != pid {
		return &Error{Path: pid.path, ID: pid.modelID, Err: ErrResourceNotFound}
	}
	if _, exists := m.resources[pid.uniqueID]; exists {
		return &Error{Path: pid.path, ID: pid.modelID, Err: ErrDuplicateResourceID}
	}
	m.resources[pid.uniqueID] = r
	m.order = append(m.order, r)
	return nil
}

// FindPackageResourceID looks up a reserved (path, localID) pair.
func (m *Model) FindPackageResourceID(path string, localID ModelResourceID) (*PackageResourceID, bool) {
	if path == "" {
		path = m.rootPath
	}
	pid, ok := m.ids[localKey{path, localID}]
	return pid, ok
}

// FindByUniqueID looks up a package id by its unique id.
func (m *Model) FindByUniqueID(uid UniqueResourceID) (*PackageResourceID, bool) {
	pid, ok := m.byUnique[uid]
	return pid, ok
}

// Find returns the resource registered under pid.
func (m *Model) Find(pid *PackageResourceID) (Resource, error) {
	if pid == nil {
		return nil, ErrResourceNotFound
	}
	if m.byUnique[pid.uniqueID] != pid {
		return nil, &Error{Path: pid.path, ID: pid.modelID, Err: ErrModelMismatch}
	}
	r, ok := m.resources[pid.uniqueID]
	if !ok {
		return nil, &Error{Path: pid.path, ID: pid.modelID, Err: ErrResourceNotFound}
	}
	return r, nil
}

// Resolve turns a path-scoped local reference into the registered resource.
func (m *Model) Resolve(path string, localID ModelResourceID) (Resource, error) {
	pid, ok := m.FindPackageResourceID(path, localID)
	if !ok {
		if path == "" {
			path = m.rootPath
		}
		return nil, &Error{Path: path, ID: localID, Err: ErrResourceNotFound}
	}
	return m.Find(pid)
}

// Resources returns all registered resources in registration order.
func (m *Model) Resources() []Resource {
	out := make([]Resource, len(m.order))
	copy(out, m.order)
	return out
}

// SortedResources orders resources so every resource comes after the
// resources it depends on. Independent resources keep registration order.
func (m *Model) SortedResources() ([]Resource, error) {
	inDegree := make(map[UniqueResourceID]int, len(m.order))
	dependents := make(map[UniqueResourceID][]UniqueResourceID)
	for _, r := range m.order {
		uid := r.PackageResourceID().uniqueID
		inDegree[uid] += 0
		dep, ok := r.(Dependent)
		if !ok {
			continue
		}
		seen := make(map[UniqueResourceID]bool)
		for _, d := range dep.Dependencies() {
			if d == nil || seen[d.uniqueID] {
				continue
			}
			if _, registered := m.resources[d.uniqueID]; !registered {
				return nil, &Error{Path: d.path, ID: d.modelID, Err: ErrResourceNotFound}
			}
			seen[d.uniqueID] = true
			inDegree[uid]++
			dependents[d.uniqueID] = append(dependents[d.uniqueID], uid)
		}
	}

	queue := make([]UniqueResourceID, 0, len(m.order))
	for _, r := range m.order {
		uid := r.PackageResourceID().uniqueID
		if inDegree[uid] == 0 {
			queue = append(queue, uid)
		}
	}

	sorted := make([]Resource, 0, len(m.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, m.resources[current])
		for _, next := range dependents[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(m.order) {
		for _, r := range m.order {
			if inDegree[r.PackageResourceID().uniqueID] > 0 {
				pid := r.PackageResourceID()
				return nil, fmt.Errorf("resource %s: %w", pid, ErrCircularDependency)
			}
		}
	}
	return sorted, nil
}
