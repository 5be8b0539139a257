package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

type User struct {
	ID      *int64 `grapefruit:"id,id_type=generator"`
	Name    string `grapefruit:"column"`
	Email   string `grapefruit:"column,name=email_address"`
	Deleted bool   `grapefruit:"column,logical_delete"`
	Version int64  `grapefruit:"column,version"`
	Secret  string `grapefruit:"column,ignore"`
	skip    string
}

func TestDeriveBasic(t *testing.T) {
	spec, err := schema.Derive[User]()
	require.NoError(t, err)

	assert.Equal(t, "user", spec.TableName)
	require.NotNil(t, spec.PrimaryKey)
	assert.Equal(t, schema.IDGenerator, spec.PrimaryKey.IDStrategy)

	require.NotNil(t, spec.LogicalDelete)
	assert.Equal(t, "Deleted", spec.LogicalDelete.Name)

	require.NotNil(t, spec.Version)
	assert.Equal(t, "Version", spec.Version.Name)

	emailCol, ok := spec.Column("Email")
	require.True(t, ok)
	assert.Equal(t, "email_address", emailCol.Alias)

	// Secret is ignored: excluded from insert/update/select sets.
	for _, c := range spec.InsertColumns {
		assert.NotEqual(t, "Secret", c.Name)
	}
	for _, c := range spec.SelectColumns {
		assert.NotEqual(t, "Secret", c.Name)
	}

	// Deleted is excluded from UpdateColumns (logical-delete marker).
	for _, c := range spec.UpdateColumns {
		assert.NotEqual(t, "Deleted", c.Name)
	}

	// Primary key participates in select, and (since IDGenerator != IDAuto)
	// in insert.
	var sawPKInsert, sawPKSelect bool
	for _, c := range spec.InsertColumns {
		if c.Name == "ID" {
			sawPKInsert = true
		}
	}
	for _, c := range spec.SelectColumns {
		if c.Name == "ID" {
			sawPKSelect = true
		}
	}
	assert.True(t, sawPKInsert)
	assert.True(t, sawPKSelect)
}

type AutoIDEntity struct {
	ID   *int64 `grapefruit:"id,id_type=auto"`
	Name string `grapefruit:"column"`
}

func TestAutoIDExcludedFromInsert(t *testing.T) {
	spec, err := schema.Derive[AutoIDEntity]()
	require.NoError(t, err)
	for _, c := range spec.InsertColumns {
		assert.NotEqual(t, "ID", c.Name)
	}
}

type NoPrimaryKey struct {
	Name string `grapefruit:"column"`
}

func TestMissingPrimaryKeyFails(t *testing.T) {
	_, err := schema.Derive[NoPrimaryKey]()
	require.Error(t, err)
}

type NonPointerID struct {
	ID   int64  `grapefruit:"id,id_type=auto"`
	Name string `grapefruit:"column"`
}

func TestNonNullablePrimaryKeyFails(t *testing.T) {
	_, err := schema.Derive[NonPointerID]()
	require.Error(t, err)
}

type BadAttr struct {
	ID   *int64 `grapefruit:"id,id_type=auto"`
	Name string `grapefruit:"column,fill=sometimes"`
}

func TestUnknownEnumValueFails(t *testing.T) {
	_, err := schema.Derive[BadAttr]()
	require.Error(t, err)
	var fe *schema.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Name", fe.Field)
}

type DoubleLogicalDelete struct {
	ID *int64 `grapefruit:"id,id_type=auto"`
	A  bool   `grapefruit:"column,logical_delete"`
	B  bool   `grapefruit:"column,logical_delete"`
}

func TestMultipleLogicalDeleteFails(t *testing.T) {
	_, err := schema.Derive[DoubleLogicalDelete]()
	require.Error(t, err)
}

func TestColumnEnumKeyedByUpperCamelCase(t *testing.T) {
	spec, err := schema.Derive[User]()
	require.NoError(t, err)

	cols, err := schema.Columns[User]()
	require.NoError(t, err)
	assert.Equal(t, spec.ColumnEnum, cols)

	emailCol, ok := cols["EmailAddress"]
	require.True(t, ok, "enumeration must key a renamed column by its alias, not its Go field name")
	assert.Equal(t, wrapper.Col("email_address"), emailCol)

	assert.Equal(t, wrapper.Col(spec.LogicalDelete.Alias), cols["Deleted"])
	assert.Equal(t, spec.PrimaryKey.Column, cols["ID"])
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "user", schema.SnakeCase("User"))
	assert.Equal(t, "user_profile", schema.SnakeCase("UserProfile"))
	assert.Equal(t, "id", schema.SnakeCase("ID"))
}

func TestUpperCamelCase(t *testing.T) {
	assert.Equal(t, "UserProfile", schema.UpperCamelCase("user_profile"))
	assert.Equal(t, "Id", schema.UpperCamelCase("id"))
}
