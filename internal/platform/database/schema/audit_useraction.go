package schema

// AuditUserActionTable represents the 'audit.useraction' table
type AuditUserActionTable struct {
	Table          string
	ID             string
	Action         string
	UserID         string
	EntityType     string
	EntityID       string
	EntitySnapshot string
	Timestamp      string
}

// AuditUserAction is the schema definition for audit.useraction
var AuditUserAction = AuditUserActionTable{
	Table:          "audit.useraction",
	ID:             "id",
	Action:         "action",
	UserID:         "userid",
	EntityType:     "entitytype",
	EntityID:       "entityid",
	EntitySnapshot: "entitysnapshot",
	Timestamp:      "timestamp",
}

// Columns returns all standard column names
func (t AuditUserActionTable) Columns() []string {
	return []string{
		t.ID, t.Action, t.UserID, t.EntityType, t.EntityID,
		t.EntitySnapshot, t.Timestamp,
	}
}
