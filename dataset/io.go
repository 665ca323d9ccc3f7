package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCSV writes the dataset with a header row: one column per feature plus a
// trailing "class" column.
func (d Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, d.Names...), "class")
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	record := make([]string, len(header))
	for _, o := range d.Obs {
		for i, v := range o.Features {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[len(record)-1] = o.Class.String()
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing csv")
}

// ReadCSV reads a dataset written by WriteCSV.
func ReadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "reading %s", path)
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return Dataset{}, Inputf("%s is not a dataset csv", path)
	}

	header := records[0]
	names := append([]string{}, header[:len(header)-1]...)
	ds := Dataset{Names: names}
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return Dataset{}, Inputf("row %d has %d columns, want %d", i+1, len(record), len(header))
		}
		feats := make([]float64, len(names))
		for j := range names {
			feats[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return Dataset{}, errors.Wrapf(err, "row %d column %s", i+1, names[j])
			}
		}
		var class Class
		switch record[len(record)-1] {
		case Class1.String():
			class = Class1
		case Class2.String():
			class = Class2
		default:
			return Dataset{}, Inputf("row %d has unknown class %q", i+1, record[len(record)-1])
		}
		ds.Obs = append(ds.Obs, Observation{Features: feats, Class: class})
	}
	return ds, nil
}
