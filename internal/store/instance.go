package store

import (
	"sort"
	"sync"

	"github.com/fyrsmithlabs/flowmock/internal/model"
)

// Composite natural keys. Flat keys keep uniqueness a single map lookup
// and deletes free of partial-path cleanup.
type runKey struct {
	dagID string
	runID string
}

type taskKey struct {
	dagID  string
	runID  string
	taskID string
}

type logKey struct {
	taskKey
	tryNumber int
}

type xcomKey struct {
	dagID  string
	taskID string
	key    string
	runID  string
}

// InstanceStore owns the entity graph of one mock instance. All methods
// are safe for concurrent use; each completes synchronously and performs
// no I/O.
type InstanceStore struct {
	instanceID string

	mu          sync.RWMutex
	dags        map[string]model.DAG
	runs        map[runKey]model.DAGRun
	tasks       map[taskKey]model.TaskInstance
	logs        map[logKey]model.TaskLog
	xcoms       map[xcomKey]model.XCom
	variables   map[string]model.Variable
	connections map[string]model.Connection
	pools       map[string]model.Pool
	providers   map[string]model.Provider
}

// NewInstanceStore creates an empty store for the given instance id.
func NewInstanceStore(instanceID string) *InstanceStore {
	return &InstanceStore{
		instanceID:  instanceID,
		dags:        make(map[string]model.DAG),
		runs:        make(map[runKey]model.DAGRun),
		tasks:       make(map[taskKey]model.TaskInstance),
		logs:        make(map[logKey]model.TaskLog),
		xcoms:       make(map[xcomKey]model.XCom),
		variables:   make(map[string]model.Variable),
		connections: make(map[string]model.Connection),
		pools:       make(map[string]model.Pool),
		providers:   make(map[string]model.Provider),
	}
}

// InstanceID returns the id this store was created for.
func (s *InstanceStore) InstanceID() string {
	return s.instanceID
}

// -- DAGs --

// PutDAG inserts or replaces a DAG by dag_id.
func (s *InstanceStore) PutDAG(d model.DAG) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dags[d.DAGID] = d
}

// GetDAG returns the DAG with the given id.
func (s *InstanceStore) GetDAG(dagID string) (model.DAG, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dags[dagID]
	return d, ok
}

// ListDAGs returns one page of DAGs and the total count before paging.
func (s *InstanceStore) ListDAGs(opts ListOptions) ([]model.DAG, int) {
	s.mu.RLock()
	items := make([]model.DAG, 0, len(s.dags))
	for _, d := range s.dags {
		items = append(items, d)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].DAGID < items[j].DAGID })
	orderBy(items, opts.OrderBy, DAGFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteDAG removes a DAG and everything under its namespace: runs, task
// instances, logs, and XCom entries.
func (s *InstanceStore) DeleteDAG(dagID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dags[dagID]; !ok {
		return false
	}
	delete(s.dags, dagID)
	for k := range s.runs {
		if k.dagID == dagID {
			delete(s.runs, k)
		}
	}
	for k := range s.tasks {
		if k.dagID == dagID {
			delete(s.tasks, k)
		}
	}
	for k := range s.logs {
		if k.dagID == dagID {
			delete(s.logs, k)
		}
	}
	for k := range s.xcoms {
		if k.dagID == dagID {
			delete(s.xcoms, k)
		}
	}
	return true
}

// -- DAG runs --

// PutDAGRun inserts or replaces a run by (dag_id, run_id).
func (s *InstanceStore) PutDAGRun(r model.DAGRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runKey{r.DAGID, r.RunID}] = r
}

// GetDAGRun returns the run with the given composite key.
func (s *InstanceStore) GetDAGRun(dagID, runID string) (model.DAGRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runKey{dagID, runID}]
	return r, ok
}

// ListDAGRuns returns one page of a DAG's runs after applying state and
// execution-date filters, plus the filtered total.
func (s *InstanceStore) ListDAGRuns(dagID string, opts ListOptions) ([]model.DAGRun, int) {
	s.mu.RLock()
	items := make([]model.DAGRun, 0)
	for k, r := range s.runs {
		if k.dagID != dagID {
			continue
		}
		if opts.State != "" && r.State != opts.State {
			continue
		}
		if opts.ExecutionDateGTE != nil && r.ExecutionDate.Before(*opts.ExecutionDateGTE) {
			continue
		}
		if opts.ExecutionDateLTE != nil && r.ExecutionDate.After(*opts.ExecutionDateLTE) {
			continue
		}
		items = append(items, r)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].RunID < items[j].RunID })
	orderBy(items, opts.OrderBy, DAGRunFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteDAGRun removes a run and its task instances, logs, and XComs.
func (s *InstanceStore) DeleteDAGRun(dagID, runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runKey{dagID, runID}]; !ok {
		return false
	}
	delete(s.runs, runKey{dagID, runID})
	for k := range s.tasks {
		if k.dagID == dagID && k.runID == runID {
			delete(s.tasks, k)
		}
	}
	for k := range s.logs {
		if k.dagID == dagID && k.runID == runID {
			delete(s.logs, k)
		}
	}
	for k := range s.xcoms {
		if k.dagID == dagID && k.runID == runID {
			delete(s.xcoms, k)
		}
	}
	return true
}

// -- Task instances --

// PutTaskInstance inserts or replaces a task instance by its composite key.
func (s *InstanceStore) PutTaskInstance(t model.TaskInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[taskKey{t.DAGID, t.RunID, t.TaskID}] = t
}

// GetTaskInstance returns the task instance with the given composite key.
func (s *InstanceStore) GetTaskInstance(dagID, runID, taskID string) (model.TaskInstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[taskKey{dagID, runID, taskID}]
	return t, ok
}

// ListTaskInstances returns one page of a run's task instances after the
// state filter, plus the filtered total.
func (s *InstanceStore) ListTaskInstances(dagID, runID string, opts ListOptions) ([]model.TaskInstance, int) {
	s.mu.RLock()
	items := make([]model.TaskInstance, 0)
	for k, t := range s.tasks {
		if k.dagID != dagID || k.runID != runID {
			continue
		}
		if opts.State != "" && t.State != opts.State {
			continue
		}
		items = append(items, t)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].TaskID < items[j].TaskID })
	orderBy(items, opts.OrderBy, TaskInstanceFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteTaskInstance removes a task instance and its logs and XComs.
func (s *InstanceStore) DeleteTaskInstance(dagID, runID, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := taskKey{dagID, runID, taskID}
	if _, ok := s.tasks[k]; !ok {
		return false
	}
	delete(s.tasks, k)
	for lk := range s.logs {
		if lk.taskKey == k {
			delete(s.logs, lk)
		}
	}
	for xk := range s.xcoms {
		if xk.dagID == dagID && xk.runID == runID && xk.taskID == taskID {
			delete(s.xcoms, xk)
		}
	}
	return true
}

// ClearTaskInstance resets a task instance to its initial attempt: state
// "none", try_number 1, and start/end/duration cleared. Returns the
// updated record.
func (s *InstanceStore) ClearTaskInstance(dagID, runID, taskID string) (model.TaskInstance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := taskKey{dagID, runID, taskID}
	t, ok := s.tasks[k]
	if !ok {
		return model.TaskInstance{}, false
	}
	t.State = model.StateNone
	t.TryNumber = 1
	t.StartDate = nil
	t.EndDate = nil
	t.Duration = nil
	s.tasks[k] = t
	return t, true
}

// -- Task logs --

// PutTaskLog inserts or replaces the log entry for one task attempt.
func (s *InstanceStore) PutTaskLog(dagID, runID, taskID string, tryNumber int, l model.TaskLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[logKey{taskKey{dagID, runID, taskID}, tryNumber}] = l
}

// GetTaskLog returns the log entry for one task attempt.
func (s *InstanceStore) GetTaskLog(dagID, runID, taskID string, tryNumber int) (model.TaskLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.logs[logKey{taskKey{dagID, runID, taskID}, tryNumber}]
	return l, ok
}

// -- XComs --

// PutXCom inserts or replaces an entry by (dag_id, task_id, key, run_id).
func (s *InstanceStore) PutXCom(x model.XCom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xcoms[xcomKey{x.DAGID, x.TaskID, x.Key, x.RunID}] = x
}

// GetXCom returns the entry addressed by all four key parts. An empty
// runID resolves to the most recent entry, see LatestXCom.
func (s *InstanceStore) GetXCom(dagID, taskID, key, runID string) (model.XCom, bool) {
	if runID == "" {
		return s.LatestXCom(dagID, taskID, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	x, ok := s.xcoms[xcomKey{dagID, taskID, key, runID}]
	return x, ok
}

// LatestXCom returns the maximum-timestamp entry among all entries
// sharing (dag_id, task_id, key). Entries with identical timestamps
// resolve to the lexicographically greatest run_id, so the result is
// deterministic regardless of insertion order.
func (s *InstanceStore) LatestXCom(dagID, taskID, key string) (model.XCom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best model.XCom
	found := false
	for k, x := range s.xcoms {
		if k.dagID != dagID || k.taskID != taskID || k.key != key {
			continue
		}
		if !found ||
			x.Timestamp.After(best.Timestamp) ||
			(x.Timestamp.Equal(best.Timestamp) && x.RunID > best.RunID) {
			best = x
			found = true
		}
	}
	return best, found
}

// XComFilter selects XCom entries; empty fields match everything.
type XComFilter struct {
	DAGID  string
	TaskID string
	RunID  string
	Key    string
}

// ListXComs returns one page of matching entries and the filtered total.
func (s *InstanceStore) ListXComs(f XComFilter, opts ListOptions) ([]model.XCom, int) {
	s.mu.RLock()
	items := make([]model.XCom, 0)
	for k, x := range s.xcoms {
		if f.DAGID != "" && k.dagID != f.DAGID {
			continue
		}
		if f.TaskID != "" && k.taskID != f.TaskID {
			continue
		}
		if f.RunID != "" && k.runID != f.RunID {
			continue
		}
		if f.Key != "" && k.key != f.Key {
			continue
		}
		items = append(items, x)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.DAGID != b.DAGID {
			return a.DAGID < b.DAGID
		}
		if a.TaskID != b.TaskID {
			return a.TaskID < b.TaskID
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.RunID < b.RunID
	})
	orderBy(items, opts.OrderBy, XComFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteXCom removes the entry addressed by all four key parts. An empty
// runID cascades, removing every entry under (dag_id, task_id, key).
func (s *InstanceStore) DeleteXCom(dagID, taskID, key, runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if runID != "" {
		k := xcomKey{dagID, taskID, key, runID}
		if _, ok := s.xcoms[k]; !ok {
			return false
		}
		delete(s.xcoms, k)
		return true
	}
	deleted := false
	for k := range s.xcoms {
		if k.dagID == dagID && k.taskID == taskID && k.key == key {
			delete(s.xcoms, k)
			deleted = true
		}
	}
	return deleted
}

// -- Variables --

// PutVariable inserts or replaces a variable by key.
func (s *InstanceStore) PutVariable(v model.Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[v.Key] = v
}

// GetVariable returns the variable with the given key.
func (s *InstanceStore) GetVariable(key string) (model.Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variables[key]
	return v, ok
}

// ListVariables returns one page of variables and the total count.
func (s *InstanceStore) ListVariables(opts ListOptions) ([]model.Variable, int) {
	s.mu.RLock()
	items := make([]model.Variable, 0, len(s.variables))
	for _, v := range s.variables {
		items = append(items, v)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	orderBy(items, opts.OrderBy, VariableFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteVariable removes the variable with the given key.
func (s *InstanceStore) DeleteVariable(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variables[key]; !ok {
		return false
	}
	delete(s.variables, key)
	return true
}

// -- Connections --

// PutConnection inserts or replaces a connection by conn_id.
func (s *InstanceStore) PutConnection(c model.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[c.ConnID] = c
}

// GetConnection returns the connection with the given id.
func (s *InstanceStore) GetConnection(connID string) (model.Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.connections[connID]
	return c, ok
}

// ListConnections returns one page of connections and the total count.
func (s *InstanceStore) ListConnections(opts ListOptions) ([]model.Connection, int) {
	s.mu.RLock()
	items := make([]model.Connection, 0, len(s.connections))
	for _, c := range s.connections {
		items = append(items, c)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ConnID < items[j].ConnID })
	orderBy(items, opts.OrderBy, ConnectionFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteConnection removes the connection with the given id.
func (s *InstanceStore) DeleteConnection(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.connections[connID]; !ok {
		return false
	}
	delete(s.connections, connID)
	return true
}

// -- Pools --

// PutPool inserts or replaces a pool by name. open_slots is re-derived
// before storing; a caller-supplied value is discarded.
func (s *InstanceStore) PutPool(p model.Pool) {
	p.Recalc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[p.Name] = p
}

// GetPool returns the pool with the given name.
func (s *InstanceStore) GetPool(name string) (model.Pool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[name]
	return p, ok
}

// ListPools returns one page of pools and the total count.
func (s *InstanceStore) ListPools(opts ListOptions) ([]model.Pool, int) {
	s.mu.RLock()
	items := make([]model.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		items = append(items, p)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	orderBy(items, opts.OrderBy, PoolFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeletePool removes the pool with the given name.
func (s *InstanceStore) DeletePool(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pools[name]; !ok {
		return false
	}
	delete(s.pools, name)
	return true
}

// UpdatePoolSlots applies a partial slot-count update. Nil fields keep
// their prior values; open_slots is recomputed from the resulting
// occupied count.
func (s *InstanceStore) UpdatePoolSlots(name string, occupied, queued, running *int) (model.Pool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pools[name]
	if !ok {
		return model.Pool{}, false
	}
	if occupied != nil {
		p.OccupiedSlots = *occupied
	}
	if queued != nil {
		p.QueuedSlots = *queued
	}
	if running != nil {
		p.RunningSlots = *running
	}
	p.Recalc()
	s.pools[name] = p
	return p, true
}

// -- Providers --

// PutProvider inserts or replaces a provider by package_name.
func (s *InstanceStore) PutProvider(p model.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.PackageName] = p
}

// GetProvider returns the provider with the given package name.
func (s *InstanceStore) GetProvider(packageName string) (model.Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[packageName]
	return p, ok
}

// ListProviders returns one page of providers and the total count.
func (s *InstanceStore) ListProviders(opts ListOptions) ([]model.Provider, int) {
	s.mu.RLock()
	items := make([]model.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		items = append(items, p)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].PackageName < items[j].PackageName })
	orderBy(items, opts.OrderBy, ProviderFields)
	total := len(items)
	return paginate(items, opts), total
}

// DeleteProvider removes the provider with the given package name.
func (s *InstanceStore) DeleteProvider(packageName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[packageName]; !ok {
		return false
	}
	delete(s.providers, packageName)
	return true
}
