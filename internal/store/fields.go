package store

import "github.com/fyrsmithlabs/flowmock/internal/model"

// Orderable field sets per entity kind, keyed by JSON wire name. The API
// layer validates order_by parameters against these before listing.
var (
	DAGFields = FieldSet[model.DAG]{
		"dag_id":           func(d model.DAG) any { return d.DAGID },
		"is_paused":        func(d model.DAG) any { return d.IsPaused },
		"is_active":        func(d model.DAG) any { return d.IsActive },
		"fileloc":          func(d model.DAG) any { return d.Fileloc },
		"last_parsed_time": func(d model.DAG) any { return d.LastParsedTime },
	}

	DAGRunFields = FieldSet[model.DAGRun]{
		"dag_id":         func(r model.DAGRun) any { return r.DAGID },
		"run_id":         func(r model.DAGRun) any { return r.RunID },
		"execution_date": func(r model.DAGRun) any { return r.ExecutionDate },
		"start_date":     func(r model.DAGRun) any { return r.StartDate },
		"end_date":       func(r model.DAGRun) any { return r.EndDate },
		"state":          func(r model.DAGRun) any { return r.State },
	}

	TaskInstanceFields = FieldSet[model.TaskInstance]{
		"task_id":         func(t model.TaskInstance) any { return t.TaskID },
		"state":           func(t model.TaskInstance) any { return t.State },
		"try_number":      func(t model.TaskInstance) any { return t.TryNumber },
		"start_date":      func(t model.TaskInstance) any { return t.StartDate },
		"end_date":        func(t model.TaskInstance) any { return t.EndDate },
		"duration":        func(t model.TaskInstance) any { return t.Duration },
		"pool":            func(t model.TaskInstance) any { return t.Pool },
		"queue":           func(t model.TaskInstance) any { return t.Queue },
		"priority_weight": func(t model.TaskInstance) any { return t.PriorityWeight },
	}

	XComFields = FieldSet[model.XCom]{
		"key":            func(x model.XCom) any { return x.Key },
		"timestamp":      func(x model.XCom) any { return x.Timestamp },
		"execution_date": func(x model.XCom) any { return x.ExecutionDate },
		"dag_id":         func(x model.XCom) any { return x.DAGID },
		"task_id":        func(x model.XCom) any { return x.TaskID },
		"run_id":         func(x model.XCom) any { return x.RunID },
	}

	VariableFields = FieldSet[model.Variable]{
		"key":   func(v model.Variable) any { return v.Key },
		"value": func(v model.Variable) any { return v.Value },
	}

	ConnectionFields = FieldSet[model.Connection]{
		"conn_id":   func(c model.Connection) any { return c.ConnID },
		"conn_type": func(c model.Connection) any { return c.ConnType },
	}

	PoolFields = FieldSet[model.Pool]{
		"name":           func(p model.Pool) any { return p.Name },
		"slots":          func(p model.Pool) any { return p.Slots },
		"occupied_slots": func(p model.Pool) any { return p.OccupiedSlots },
		"queued_slots":   func(p model.Pool) any { return p.QueuedSlots },
		"running_slots":  func(p model.Pool) any { return p.RunningSlots },
		"open_slots":     func(p model.Pool) any { return p.OpenSlots },
	}

	ProviderFields = FieldSet[model.Provider]{
		"package_name":  func(p model.Provider) any { return p.PackageName },
		"provider_name": func(p model.Provider) any { return p.ProviderName },
		"version":       func(p model.Provider) any { return p.Version },
	}
)
