package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBracketedLabeledList(t *testing.T) {
	e := NewExtractor(0)

	items := e.Extract("After reviewing the requirements.\nEIF list: [Job Info, Employee Info]")
	assert.Equal(t, []string{"Job Info", "Employee Info"}, items)
}

func TestExtractNoneSentinel(t *testing.T) {
	e := NewExtractor(0)

	assert.Empty(t, e.Extract("EIF list: none"))
	assert.Empty(t, e.Extract("EIF功能点列表：无"))
	assert.Empty(t, e.Extract("无"))
}

func TestExtractChineseLabeledList(t *testing.T) {
	e := NewExtractor(0)

	items := e.Extract("分析完成。\nEIF功能点列表：[职位信息, 员工信息]")
	assert.Equal(t, []string{"职位信息", "员工信息"}, items)

	items = e.Extract("最终EIF功能点列表：[Job Info, Employee Info]")
	assert.Equal(t, []string{"Job Info", "Employee Info"}, items)
}

func TestExtractLongTextPrefersTrailingConclusion(t *testing.T) {
	e := NewExtractor(0)

	// A long analysis restates a scratch list early on; only the final
	// conclusion counts.
	var b strings.Builder
	b.WriteString("初步识别的外部数据源：[Scratch One, Scratch Two]\n")
	for i := 0; i < 60; i++ {
		b.WriteString("对每个数据源进行EIF条件分析，考察逻辑独立性与维护边界。\n")
	}
	b.WriteString("最终EIF功能点列表：[Job Info, Employee Info]")

	items := e.Extract(b.String())
	assert.Equal(t, []string{"Job Info", "Employee Info"}, items)
}

func TestExtractLongTextNoneConclusion(t *testing.T) {
	e := NewExtractor(0)

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("需求文档中未发现满足条件的外部数据接口，继续验证。\n")
	}
	b.WriteString("最终EIF功能点列表：无")

	assert.Empty(t, e.Extract(b.String()))
}

func TestExtractLongTextBracketedTail(t *testing.T) {
	e := NewExtractor(0)

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("The analysis considers each candidate data source in turn.\n")
	}
	b.WriteString("Conclusion based on the review: [JOB_INFO, EMPLOYEE_INFO]\n")

	items := e.Extract(b.String())
	assert.Equal(t, []string{"JOB_INFO", "EMPLOYEE_INFO"}, items)
}

func TestExtractPlainCommaSeparated(t *testing.T) {
	e := NewExtractor(0)

	items := e.Extract("Job Info, Employee Info, Department Info")
	assert.Equal(t, []string{"Job Info", "Employee Info", "Department Info"}, items)
}

func TestExtractIdeographicCommaSeparated(t *testing.T) {
	e := NewExtractor(0)

	// A bare enumeration on 、 is a list, not a single name.
	items := e.Extract("客户信息、订单信息")
	assert.Equal(t, []string{"客户信息", "订单信息"}, items)
}

func TestExtractSingleName(t *testing.T) {
	e := NewExtractor(0)

	items := e.Extract("Employee Info")
	assert.Equal(t, []string{"Employee Info"}, items)
}

func TestExtractBoldNumberedList(t *testing.T) {
	e := NewExtractor(0)

	text := "识别结果说明见下。\n" +
		"1. **EMPLOYEE SECURITY** – 外部安全数据\n" +
		"2. **JOB INFO** – 外部职位数据\n"
	items := e.Extract(text)
	assert.Equal(t, []string{"EMPLOYEE SECURITY", "JOB INFO"}, items)
}

func TestExtractNumberedListAfterLabel(t *testing.T) {
	e := NewExtractor(0)

	text := "EIF功能点列表：\n1. **Job Info** - 来自人事系统\n2. **Employee Info** - 来自档案系统\n"
	items := e.Extract(text)
	assert.Equal(t, []string{"Job Info", "Employee Info"}, items)
}

func TestExtractDiscardsOverlongItems(t *testing.T) {
	e := NewExtractor(20)

	items := e.Extract("EIF list: [Job Info, this item is far too long to plausibly be an entity name at all]")
	assert.Equal(t, []string{"Job Info"}, items)
}

func TestExtractCapIsConfigurable(t *testing.T) {
	wide := NewExtractor(200)

	items := wide.Extract("EIF list: [a name that would fall past the default cap but is kept when the cap is raised well above it]")
	assert.Len(t, items, 1)
}

func TestExtractEmptyAndGarbage(t *testing.T) {
	e := NewExtractor(0)

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n  "))
}

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"1. Job Info":     "Job Info",
		"2) Employee":     "Employee",
		"3、部门信息":          "部门信息",
		"- Job Info":      "Job Info",
		"• Employee Info": "Employee Info",
		"[Job Info]":      "Job Info",
		"  Job   Info  ":  "Job Info",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanName(in), "input %q", in)
	}
}

func TestExtractOrderPreserved(t *testing.T) {
	e := NewExtractor(0)

	items := e.Extract("EIF list: [C Name, A Name, B Name]")
	assert.Equal(t, []string{"C Name", "A Name", "B Name"}, items)
}
