package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"complaints/internal/config"
	"complaints/internal/pipeline"
	"complaints/internal/source"
	"complaints/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func defaultConfig(t *testing.T) *models.Config {
	t.Helper()
	cfg, err := config.NewLoader().LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func runFiles(t *testing.T, cfg *models.Config, input, output string) error {
	t.Helper()
	return NewRunner(cfg, &models.CLIOptions{InputPath: input, OutputPath: output}).Run(context.Background())
}

func TestRunner_Run(t *testing.T) {
	t.Run("should write sorted report", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "complaints.csv")
		output := filepath.Join(dir, "report.csv")

		content := "\n" +
			"Date received,Product,Sub-product,Company,State\n" +
			"2019-09-24,Debt collection,I do not know,TRANSUNION INTERMEDIATE HOLDINGS,FL\n" +
			"2019-09-19,\"Credit reporting, credit repair services, or other personal consumer reports\",Credit reporting,Experian Information Solutions Inc.,PA\n" +
			"2020-01-06,\"Credit reporting, credit repair services, or other personal consumer reports\",Credit reporting,Experian Information Solutions Inc.,CA\n" +
			"2019-10-25,\"Credit reporting, credit repair services, or other personal consumer reports\",Credit reporting,TRANSUNION INTERMEDIATE HOLDINGS,NY\n" +
			"2019-11-02,,Other,Acme,TX\n" +
			"2019-13-02,Debt collection,Other,Acme,TX\n" +
			"2019-11-28,Debt collection,I do not know,Transunion Intermediate Holdings,NJ\n"
		require.NoError(t, os.WriteFile(input, []byte(content), 0644))

		require.NoError(t, runFiles(t, defaultConfig(t), input, output))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t,
			"\"credit reporting, credit repair services, or other personal consumer reports\",2019,2,2,50\n"+
				"\"credit reporting, credit repair services, or other personal consumer reports\",2020,1,1,100\n"+
				"debt collection,2019,2,1,100\n",
			string(data))
	})

	t.Run("should append on repeated runs", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "complaints.csv")
		output := filepath.Join(dir, "report.csv")
		require.NoError(t, os.WriteFile(input, []byte("Product,Company,Date received\nMortgage,Acme,2020-03-01\n"), 0644))

		cfg := defaultConfig(t)
		require.NoError(t, runFiles(t, cfg, input, output))
		require.NoError(t, runFiles(t, cfg, input, output))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "mortgage,2020,1,1,100\nmortgage,2020,1,1,100\n", string(data))

		cfg.Output.Overwrite = true
		require.NoError(t, runFiles(t, cfg, input, output))

		data, err = os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "mortgage,2020,1,1,100\n", string(data))
	})

	t.Run("should read xlsx input", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "complaints.xlsx")
		output := filepath.Join(dir, "report.csv")

		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Date received", "Product", "Company"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2021-05-01", "Credit card", "Acme"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2021-06-01", "Credit card", "Acme"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"2021-07-01", "Credit card", "Beta"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A5", &[]interface{}{"2021-07-01", "Credit card"}))
		require.NoError(t, f.SaveAs(input))
		require.NoError(t, f.Close())

		require.NoError(t, runFiles(t, defaultConfig(t), input, output))

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "credit card,2021,3,2,67\n", string(data))
	})
}

func TestRunner_FatalConditions(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name:     "should fail on empty file",
			content:  "",
			expected: source.ErrEmptyFile,
		},
		{
			name:     "should fail on header only",
			content:  "Date received,Product,Company\n",
			expected: pipeline.ErrHeaderOnly,
		},
		{
			name:     "should fail when only blank lines follow the header",
			content:  "Date received,Product,Company\n\n\n",
			expected: pipeline.ErrNoUsableData,
		},
		{
			name:     "should fail on missing column",
			content:  "Date received,Product\n2021-05-01,Mortgage\n",
			expected: pipeline.ErrMissingColumn,
		},
		{
			name:     "should fail when no row is usable",
			content:  "Date received,Product,Company\n2021-02-30,Mortgage,Acme\n",
			expected: pipeline.ErrNoUsableData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "complaints.csv")
			output := filepath.Join(dir, "report.csv")
			require.NoError(t, os.WriteFile(input, []byte(tt.content), 0644))

			err := runFiles(t, defaultConfig(t), input, output)
			assert.ErrorIs(t, err, tt.expected)

			_, statErr := os.Stat(output)
			assert.True(t, os.IsNotExist(statErr), "no report should be written")
		})
	}

	t.Run("should fail on missing input", func(t *testing.T) {
		dir := t.TempDir()
		err := runFiles(t, defaultConfig(t), filepath.Join(dir, "nope.csv"), filepath.Join(dir, "report.csv"))
		assert.Error(t, err)
	})
}
