package shellmenu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"MediaConverter/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExe = `C:\Program Files\MediaConverter\MediaConverter.exe`

func newTestRegistrar(store KeyStore) (*Registrar, *[]string) {
	var lines []string
	rep := common.ReporterFunc(func(level common.Severity, message string) {
		lines = append(lines, message)
	})
	r := NewRegistrar(store, testExe, rep, nil)
	r.SetElevationCheck(func() bool { return true })
	return r, &lines
}

func imageTarget() MenuTarget {
	return Targets()[0]
}

func TestRegisterWritesExpectedLayout(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)
	r.SetIcon(IconValue(testExe))

	rep, err := r.Register(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Equal(t, len(Targets()), rep.Succeeded)

	main := `Software\Classes\SystemFileAssociations\image\shell\Convert Media To`
	marker, ok := store.Value(main, "SubCommands")
	require.True(t, ok)
	assert.Equal(t, "", marker)
	icon, ok := store.Value(main, "Icon")
	require.True(t, ok)
	assert.Equal(t, `"`+testExe+`",0`, icon)

	cmd, ok := store.Value(main+`\shell\PNG\command`, "")
	require.True(t, ok)
	assert.Equal(t, `"`+testExe+`" --image "%1" png`, cmd)

	cmd, ok = store.Value(`Software\Classes\SystemFileAssociations\.flac\shell\Convert Media To\shell\OGG\command`, "")
	require.True(t, ok)
	assert.Equal(t, `"`+testExe+`" --audio -ai "%1" -o ogg`, cmd)

	cmd, ok = store.Value(`Software\Classes\Directory\shell\Convert Media To\shell\VIDEO_TO_MKV\command`, "")
	require.True(t, ok)
	assert.Equal(t, `"`+testExe+`" --video -vi "%1" -vo mkv -vr`, cmd)

	cmd, ok = store.Value(`Software\Classes\Directory\Background\shell\Convert Media To\shell\IMAGE_TO_WEBP\command`, "")
	require.True(t, ok)
	assert.Equal(t, `"`+testExe+`" --image "%V" webp -r`, cmd)

	status, err := r.Status()
	require.NoError(t, err)
	assert.True(t, status)
}

func TestRegisterIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)

	_, err := r.Register(context.Background())
	require.NoError(t, err)
	first := store.Keys()

	_, err = r.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, store.Keys())
}

func TestRegisterSetsMarkerBeforeChildren(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)

	_, err := r.Register(context.Background())
	require.NoError(t, err)

	for _, target := range Targets() {
		main := target.MainKeyPath(MenuName)
		markerAt, childAt := -1, -1
		for i, m := range store.Mutations() {
			if m.Op == OpSetString && m.Path == main && m.Name == "SubCommands" && markerAt < 0 {
				markerAt = i
			}
			if m.Op == OpCreateKey && strings.HasPrefix(m.Path, main+`\`) && childAt < 0 {
				childAt = i
			}
		}
		require.GreaterOrEqual(t, markerAt, 0, target.ClassKey)
		require.GreaterOrEqual(t, childAt, 0, target.ClassKey)
		assert.Less(t, markerAt, childAt, target.ClassKey)
	}
}

func TestRegisterWithoutElevation(t *testing.T) {
	store := NewMemoryStore()
	r, lines := newTestRegistrar(store)
	r.SetElevationCheck(func() bool { return false })

	_, err := r.Register(context.Background())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindPermissionDenied))

	_, err = r.Unregister(context.Background())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindPermissionDenied))

	assert.Empty(t, store.Mutations())
	assert.NotEmpty(t, *lines)
}

func TestRegisterContinuesAfterTargetFailure(t *testing.T) {
	store := NewMemoryStore()
	failing := `Software\Classes\SystemFileAssociations\.wav\shell\Convert Media To`
	store.FailOn = func(op, path string) error {
		if op == OpCreateKey && strings.HasPrefix(path, failing) {
			return ErrAccessDenied
		}
		return nil
	}
	r, _ := newTestRegistrar(store)

	rep, err := r.Register(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, `SystemFileAssociations\.wav`, rep.Failures[0].Target.ClassKey)
	assert.True(t, common.IsKind(rep.Failures[0].Err, common.KindPermissionDenied))
	assert.Equal(t, len(Targets())-1, rep.Succeeded)

	exists, _ := store.KeyExists(`Software\Classes\Directory\Background\shell\Convert Media To\shell\AUDIO_TO_MP3\command`)
	assert.True(t, exists)
}

func TestUnregisterContinuesAfterTargetFailure(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)
	_, err := r.Register(context.Background())
	require.NoError(t, err)

	failing := `Software\Classes\SystemFileAssociations\.wav\shell\Convert Media To`
	store.FailOn = func(op, path string) error {
		if op == OpDeleteKey && strings.HasPrefix(path, failing) {
			return ErrAccessDenied
		}
		return nil
	}

	rep, err := r.Unregister(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, `SystemFileAssociations\.wav`, rep.Failures[0].Target.ClassKey)
	assert.True(t, common.IsKind(rep.Failures[0].Err, common.KindPermissionDenied))
	assert.Equal(t, len(Targets())-1, rep.Succeeded)
	assert.False(t, rep.OK())

	exists, _ := store.KeyExists(failing)
	assert.True(t, exists)
	for _, key := range store.Keys() {
		if strings.Contains(key, MenuName) {
			assert.True(t, strings.HasPrefix(key, failing), "residual key %s", key)
		}
	}
}

func TestUnregisterRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateKey(`Software\Classes\Directory\shell\Other Tool`))
	before := store.Keys()

	r, _ := newTestRegistrar(store)
	_, err := r.Register(context.Background())
	require.NoError(t, err)

	rep, err := r.Unregister(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.OK())

	for _, key := range store.Keys() {
		assert.NotContains(t, key, MenuName)
	}
	for _, key := range before {
		exists, _ := store.KeyExists(key)
		assert.True(t, exists, key)
	}

	status, err := r.Status()
	require.NoError(t, err)
	assert.False(t, status)
}

func TestUnregisterWhenNothingRegistered(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)

	rep, err := r.Unregister(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Empty(t, store.Mutations())
}

func TestUnregisterRemovesResidualChildren(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)
	_, err := r.Register(context.Background())
	require.NoError(t, err)

	extra := imageTarget().EntryKeyPath(MenuName, "PNG") + `\extra\deeper`
	require.NoError(t, store.CreateKey(extra))
	require.NoError(t, store.CreateKey(imageTarget().EntryKeyPath(MenuName, "HEIC")+`\command`))

	_, err = r.Unregister(context.Background())
	require.NoError(t, err)

	exists, _ := store.KeyExists(imageTarget().MainKeyPath(MenuName))
	assert.False(t, exists)
}

func TestUnregisterDeletesCommandBeforeEntry(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)
	_, err := r.Register(context.Background())
	require.NoError(t, err)
	store.ResetMutations()

	_, err = r.Unregister(context.Background())
	require.NoError(t, err)

	entry := imageTarget().EntryKeyPath(MenuName, "GIF")
	commandAt, entryAt := -1, -1
	for i, m := range store.Mutations() {
		if m.Op != OpDeleteKey {
			continue
		}
		switch m.Path {
		case entry + `\command`:
			commandAt = i
		case entry:
			entryAt = i
		}
	}
	require.GreaterOrEqual(t, commandAt, 0)
	assert.Less(t, commandAt, entryAt)
}

func TestCleanLegacy(t *testing.T) {
	store := NewMemoryStore()
	for _, target := range LegacyTargets() {
		main := target.MainKeyPath(LegacyMenuName)
		require.NoError(t, store.CreateKey(main+`\shell\PNG\command`))
		require.NoError(t, store.SetString(main, "SubCommands", ""))
		require.NoError(t, store.SetString(main+`\shell\PNG\command`, "", `"C:\Tools\ImageConvert\convert.exe" "%1" png`))
	}
	r, lines := newTestRegistrar(store)

	rep := r.CleanLegacy(context.Background())
	assert.True(t, rep.OK())
	assert.Equal(t, 3, rep.Succeeded)
	for _, target := range LegacyTargets() {
		exists, _ := store.KeyExists(target.MainKeyPath(LegacyMenuName))
		assert.False(t, exists, target.ClassKey)
	}
	assert.Len(t, *lines, 3)

	// a second pass has nothing left to do
	store.ResetMutations()
	rep = r.CleanLegacy(context.Background())
	assert.True(t, rep.OK())
	assert.Empty(t, store.Mutations())
}

func TestUnregisterAlsoCleansLegacy(t *testing.T) {
	store := NewMemoryStore()
	legacy := LegacyTargets()[1].MainKeyPath(LegacyMenuName)
	require.NoError(t, store.CreateKey(legacy+`\shell\BMP\command`))

	r, _ := newTestRegistrar(store)
	_, err := r.Unregister(context.Background())
	require.NoError(t, err)

	exists, _ := store.KeyExists(legacy)
	assert.False(t, exists)
}

func TestRegisterCancelled(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Register(ctx)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindCancelled))
	assert.Empty(t, store.Mutations())
}

func TestRegisterWithoutIconRemovesStaleIcon(t *testing.T) {
	store := NewMemoryStore()
	r, _ := newTestRegistrar(store)
	r.SetIcon(IconValue(testExe))
	_, err := r.Register(context.Background())
	require.NoError(t, err)

	r.SetIcon("")
	_, err = r.Register(context.Background())
	require.NoError(t, err)

	_, ok := store.Value(imageTarget().MainKeyPath(MenuName), "Icon")
	assert.False(t, ok)
}

func TestStatusPropagatesStoreErrors(t *testing.T) {
	r, _ := newTestRegistrar(errStore{})
	_, err := r.Status()
	assert.Error(t, err)
}

type errStore struct{}

var errBroken = errors.New("broken store")

func (errStore) CreateKey(string) error                 { return errBroken }
func (errStore) SetString(string, string, string) error { return errBroken }
func (errStore) DeleteValue(string, string) error       { return errBroken }
func (errStore) DeleteKey(string) error                 { return errBroken }
func (errStore) SubKeys(string) ([]string, error)       { return nil, errBroken }
func (errStore) KeyExists(string) (bool, error)         { return false, errBroken }
