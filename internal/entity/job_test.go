package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/constants"
)

func TestJob_View(t *testing.T) {
	data := ContractFields{Buyer: Buyer{Name: "Ana"}}
	tests := map[string]struct {
		job  Job
		want JobView
	}{
		"pending": {
			job:  PendingJob{Name: "a.pdf"},
			want: JobView{Index: 0, FileName: "a.pdf", Status: constants.JobStatusPending},
		},
		"processing": {
			job:  ProcessingJob{Name: "a.pdf"},
			want: JobView{Index: 0, FileName: "a.pdf", Status: constants.JobStatusProcessing},
		},
		"completed": {
			job:  CompletedJob{Name: "a.pdf", Data: data},
			want: JobView{Index: 0, FileName: "a.pdf", Status: constants.JobStatusSuccess, Data: &data},
		},
		"failed": {
			job:  FailedJob{Name: "a.pdf", Message: "Network timeout"},
			want: JobView{Index: 0, FileName: "a.pdf", Status: constants.JobStatusError, Error: "Network timeout"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.View(0))
			assert.Equal(t, "a.pdf", tt.job.FileName())
		})
	}
}

func TestCompletedJob_ViewCopiesData(t *testing.T) {
	j := CompletedJob{Name: "a.pdf", Data: ContractFields{Buyer: Buyer{Name: "Ana"}}}

	v := j.View(3)
	v.Data.Buyer.Name = "changed"

	assert.Equal(t, "Ana", j.Data.Buyer.Name)
	assert.Equal(t, 3, v.Index)
}

func TestJobView_JSON(t *testing.T) {
	v := CompletedJob{
		Name: "a.pdf",
		Data: ContractFields{
			Buyer:  Buyer{Name: "Ana", IDNumber: "12.345.678-9"},
			Income: Income{Family: "R$ 8.000,00"},
		},
	}.View(1)

	b, err := json.Marshal(v)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 1,
		"fileName": "a.pdf",
		"status": "success",
		"data": {
			"comprador": {"nome": "Ana", "rg": "12.345.678-9"},
			"conjuge": {},
			"renda": {"rendaFamiliar": "R$ 8.000,00"},
			"imovel": {}
		}
	}`, string(b))
}
