package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/garyjia/expense-journal/internal/settings"
)

// mockLogger implements Logger for testing
type mockLogger struct {
	mu      sync.Mutex
	infos   []string
	errors  []string
	entries []map[string]interface{}
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.record(msg, "info", keysAndValues)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.record(msg, "error", keysAndValues)
}

func (m *mockLogger) record(msg, level string, keysAndValues []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level == "error" {
		m.errors = append(m.errors, msg)
	} else {
		m.infos = append(m.infos, msg)
	}

	entry := map[string]interface{}{"msg": msg, "level": level}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		entry[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	m.entries = append(m.entries, entry)
}

func (m *mockLogger) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

// mockSettingsRepo implements port.SettingsRepository in memory
type mockSettingsRepo struct {
	doc     *settings.Document
	saveErr error
	saves   int
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{doc: settings.Default()}
}

func (m *mockSettingsRepo) Current() *settings.Document {
	return m.doc.Clone()
}

func (m *mockSettingsRepo) Save(doc *settings.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	m.saves++
	m.doc = doc.Clone()
	return nil
}

// exportCSV lays rows out in the expense export column order A..N
func exportCSV(rows ...string) []byte {
	header := "伝票No,,日付,勘定科目名,補助科目名,負担部門(選択必須),自由記入欄,税率,小計,支払方法,区間,カード,交通機関,伝票種別"
	return []byte(strings.Join(append([]string{header}, rows...), "\n") + "\n")
}

var (
	expenseLine = "1,,2025-10-01,旅費交通費,,営業部,打合せ,課対仕入込10%,1000,現金,,,,経費精算"
	cardLine    = "2,,2025-10-02,旅費交通費,,営業部,会食,課対仕入込10%,5000,法人カード,,AMEX,,経費精算"
	commuteLine = "3,,2025-10-03,旅費交通費,,営業部,訪問,課対仕入込10%,480,現金,渋谷-新宿,,JR,交通費精算"
	invalidLine = "4,,2025-10-04,旅費交通費,,営業部,不明,課対仕入込10%,abc,現金,,,,経費精算"
)
