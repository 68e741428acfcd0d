// Package util reads and writes yaml files and opens log files.
package util

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog opens path for appending, falling back to discarding output when it cannot.
func OpenLog(path string, mode os.FileMode) (file io.Writer, err error) {

	if path == "" {
		file = io.Discard
		return
	}

	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		file = io.Discard
		err = errors.Wrapf(err, "failed to open log %s", path)
	}
	return
}

// CloseLog closes file when it is one.
func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadYaml unmarshals the yaml file at path into obj.
func LoadYaml(obj any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, obj)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

// WriteYaml marshals obj into a yaml file at path.
func WriteYaml(obj any, path string, mode os.FileMode) (err error) {

	data, err := yaml.Marshal(obj)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// WriteSample writes data to path unless a file is already there.
func WriteSample(data []byte, path string, mode os.FileMode) (wrote bool, err error) {

	_, err = os.Stat(path)
	if err == nil {
		return
	}
	if !os.IsNotExist(err) {
		err = errors.Wrapf(err, "failed to stat %s", path)
		return
	}

	err = os.WriteFile(path, data, mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to write to %s", path)
		return
	}

	wrote = true
	return
}
