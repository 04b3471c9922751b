package timeseries

import "github.com/go-gota/gota/dataframe"

// Metadata returns the leading MetadataWidth columns of df.
func Metadata(df dataframe.DataFrame) dataframe.DataFrame {
	idx := make([]int, MetadataWidth)
	for i := range idx {
		idx[i] = i
	}
	return df.Select(idx)
}

// Series returns every column after the metadata block.
func Series(df dataframe.DataFrame) dataframe.DataFrame {
	n := df.Ncol()
	if n <= MetadataWidth {
		return dataframe.DataFrame{Err: ErrSchema}
	}
	idx := make([]int, 0, n-MetadataWidth)
	for i := MetadataWidth; i < n; i++ {
		idx = append(idx, i)
	}
	return df.Select(idx)
}

// Join concatenates a metadata block and a series block column-wise.
// Row i of meta must describe row i of block.
func Join(meta, block dataframe.DataFrame) dataframe.DataFrame {
	return meta.CBind(block)
}
