package mockcontroller

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
)

var (
	errNodeNotFound    = errors.New("node not found")
	errVersionMismatch = errors.New("version mismatch")
)

// The tree is stored flat, keyed by absolute path. "/" always exists.

func cleanZKPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path is required")
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path %q must be absolute", p)
	}
	return path.Clean(p), nil
}

func (f *Fixtures) zkExists(p string) bool {
	if p == "/" {
		return true
	}
	_, ok := f.ZK[p]
	return ok
}

func (f *Fixtures) zkChildren(p string) []string {
	var names []string
	for key := range f.ZK {
		if key != "/" && path.Dir(key) == p {
			names = append(names, path.Base(key))
		}
	}
	sort.Strings(names)
	return names
}

func (f *Fixtures) zkStat(p string) client.ZKStat {
	node := f.ZK[p]
	stat := node.Stat
	stat.DataLength = len(node.Data)
	stat.NumChildren = len(f.zkChildren(p))
	return stat
}

func (f *Fixtures) zkListWithStat(p string) client.ZKListWithStat {
	out := client.ZKListWithStat{}
	for _, name := range f.zkChildren(p) {
		out[name] = f.zkStat(path.Join(p, name))
	}
	return out
}

// zkPut writes data at p, creating it and any missing parents. A non-negative
// expectedVersion must match the current version of an existing node.
func (f *Fixtures) zkPut(p, data string, expectedVersion int, now time.Time) error {
	if f.ZK == nil {
		f.ZK = map[string]ZKNode{}
	}
	node, exists := f.ZK[p]
	if exists && expectedVersion >= 0 && node.Stat.Version != expectedVersion {
		return fmt.Errorf("%w: expected %d, current %d", errVersionMismatch, expectedVersion, node.Stat.Version)
	}
	ms := now.UnixMilli()
	for parent := path.Dir(p); parent != "/"; parent = path.Dir(parent) {
		if _, ok := f.ZK[parent]; !ok {
			f.ZK[parent] = ZKNode{Stat: client.ZKStat{CTime: ms, MTime: ms}}
		}
	}
	if exists {
		node.Stat.Version++
	} else {
		node.Stat.CTime = ms
	}
	node.Data = data
	node.Stat.MTime = ms
	f.ZK[p] = node
	return nil
}

// zkDelete removes p and everything below it.
func (f *Fixtures) zkDelete(p string) error {
	if _, ok := f.ZK[p]; !ok {
		return errNodeNotFound
	}
	prefix := p + "/"
	for key := range f.ZK {
		if key == p || strings.HasPrefix(key, prefix) {
			delete(f.ZK, key)
		}
	}
	return nil
}
