package goassert_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	goassert "github.com/reoring/goassert"
)

type serverConfig struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Debug   bool
	private string
}

func (serverConfig) String() string { return "serverConfig" }

func TestObject_BaseType(t *testing.T) {
	g := goassert.New(goassert.Config{})
	var nilMap map[string]any

	require.NoError(t, g.Object("o", map[string]any{}).Err())
	require.NoError(t, g.Object("o", serverConfig{}).Err())
	require.NoError(t, g.Object("o", nilMap).Err())
	requireOp(t, g.Object("o", "x").Err(), goassert.OpType, "o")
	requireOp(t, g.Object("o", nil).Err(), goassert.OpType, "o")
}

func TestObject_HasMember_Scenario(t *testing.T) {
	err := goassert.New(goassert.Config{}).Object("cfg", map[string]any{}).HasMember("host").Err()
	ae := requireOp(t, err, goassert.OpHasMember, "cfg")
	require.Contains(t, ae.Message, "cfg should have member named host")
	require.Equal(t, "host", ae.Expected)
}

func TestObject_HasMember(t *testing.T) {
	g := goassert.New(goassert.Config{})
	cfg := &serverConfig{Host: "localhost", Port: 8080, private: "x"}

	require.NoError(t, g.Object("cfg", cfg).HasMember("host").HasMember("port").Err())
	require.NoError(t, g.Object("cfg", map[string]int{"a": 1}).HasMember("a").Err())

	// falsy members count as missing
	requireOp(t, g.Object("cfg", cfg).HasMember("Debug").Err(), goassert.OpHasMember, "cfg")
	requireOp(t, g.Object("cfg", map[string]any{"a": 0}).HasMember("a").Err(), goassert.OpHasMember, "cfg")
	requireOp(t, g.Object("cfg", map[string]any{"a": ""}).HasMember("a").Err(), goassert.OpHasMember, "cfg")
	requireOp(t, g.Object("cfg", map[string]any{"a": nil}).HasMember("a").Err(), goassert.OpHasMember, "cfg")
	// unexported fields are not members
	requireOp(t, g.Object("cfg", cfg).HasMember("private").Err(), goassert.OpHasMember, "cfg")
}

func TestObject_InstanceOf(t *testing.T) {
	g := goassert.New(goassert.Config{})
	cfg := &serverConfig{}

	require.NoError(t, g.Object("cfg", cfg).InstanceOf(goassert.TypeFor[serverConfig]()).Err())
	require.NoError(t, g.Object("cfg", *cfg).InstanceOf(goassert.TypeFor[serverConfig]()).Err())
	require.NoError(t, g.Object("cfg", cfg).InstanceOf(goassert.TypeFor[fmt.Stringer]()).Err())
	require.NoError(t, g.Object("when", time.Now()).InstanceOf(goassert.TypeName("time.Time")).Err())

	ae := requireOp(t, g.Object("cfg", cfg).InstanceOf(goassert.TypeFor[time.Time]()).Err(), goassert.OpInstanceOf, "cfg")
	require.Equal(t, "cfg should be an instance of time.Time", ae.Message)
}
