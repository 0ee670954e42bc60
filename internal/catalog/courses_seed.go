package catalog

func init() {
	c = buildCatalog(seedCourses())
}

func seedCourses() []Course {
	return []Course{
		{
			ID:      "python-foundations",
			Title:   "Python Foundations",
			Summary: "Variables, control flow and functions for first-time programmers.",
			Level:   LevelBeginner,
			Tags:    []string{"python", "basics"},
			Hours:   6,
			Lessons: []Lesson{
				{
					ID:      "py-variables",
					Title:   "Variables and Types",
					Summary: "Names, values and the built-in types.",
					Content: "A variable is a name bound to a value. Python infers the type from the value: " +
						"int, float, str and bool cover most beginner programs. Rebinding a name never changes the old value.",
					Minutes: 20,
					Quiz: []QuizQuestion{
						{Prompt: "What is the type of 3.0 in Python?", Choices: []string{"int", "float", "str", "decimal"}, Answer: 1,
							Explanation: "Any literal with a decimal point is a float."},
						{Prompt: "Which value is falsy?", Choices: []string{"\"0\"", "[0]", "0", "\" \""}, Answer: 2,
							Explanation: "Zero is falsy; non-empty strings and lists are truthy."},
						{Prompt: "What does x = 5; x = x + 1 leave in x?", Choices: []string{"5", "6", "an error", "None"}, Answer: 1},
					},
				},
				{
					ID:      "py-control-flow",
					Title:   "Control Flow",
					Summary: "if, for and while.",
					Content: "Branches pick one path with if/elif/else. Loops repeat: for walks an iterable, while repeats until " +
						"its condition turns false. break exits a loop early and continue skips to the next pass.",
					Minutes: 25,
					Quiz: []QuizQuestion{
						{Prompt: "How many times does for i in range(3) run?", Choices: []string{"2", "3", "4", "forever"}, Answer: 1},
						{Prompt: "Which keyword skips to the next loop iteration?", Choices: []string{"pass", "break", "continue", "next"}, Answer: 2},
						{Prompt: "What ends a while loop normally?", Choices: []string{"its condition becomes false", "return only", "an else block", "a semicolon"}, Answer: 0},
					},
				},
				{
					ID:      "py-functions",
					Title:   "Functions",
					Summary: "Defining and calling functions.",
					Content: "def introduces a function. Parameters receive arguments, return hands back a value, " +
						"and a function without return yields None. Small functions with one job are easier to test.",
					Minutes: 30,
					Quiz: []QuizQuestion{
						{Prompt: "What does a function without return give back?", Choices: []string{"0", "False", "None", "an error"}, Answer: 2},
						{Prompt: "Which keyword defines a function?", Choices: []string{"func", "def", "function", "lambda only"}, Answer: 1},
						{Prompt: "Default parameter values are evaluated when?", Choices: []string{"each call", "at definition", "never", "at import of caller"}, Answer: 1,
							Explanation: "Defaults are evaluated once, when def runs."},
					},
				},
			},
		},
		{
			ID:      "javascript-essentials",
			Title:   "JavaScript Essentials",
			Summary: "The language of the browser, from values to async code.",
			Level:   LevelBeginner,
			Tags:    []string{"javascript", "web"},
			Hours:   8,
			Lessons: []Lesson{
				{
					ID:      "js-basics",
					Title:   "Values and Bindings",
					Summary: "let, const and primitive types.",
					Content: "const creates a binding that cannot be reassigned; let allows reassignment. " +
						"Primitives are string, number, bigint, boolean, undefined, null and symbol.",
					Minutes: 20,
					Quiz: []QuizQuestion{
						{Prompt: "Which declaration cannot be reassigned?", Choices: []string{"var", "let", "const", "all of them"}, Answer: 2},
						{Prompt: "typeof null returns?", Choices: []string{"\"null\"", "\"object\"", "\"undefined\"", "\"number\""}, Answer: 1},
						{Prompt: "Which comparison avoids type coercion?", Choices: []string{"==", "===", "=", "=>"}, Answer: 1},
					},
				},
				{
					ID:      "js-dom",
					Title:   "Working with the DOM",
					Summary: "Selecting elements and handling events.",
					Content: "document.querySelector finds the first matching element. addEventListener attaches handlers. " +
						"Changing textContent is safer than innerHTML for untrusted data.",
					Minutes: 30,
					Quiz: []QuizQuestion{
						{Prompt: "Which method attaches an event handler?", Choices: []string{"onEvent", "addEventListener", "bind", "listen"}, Answer: 1},
						{Prompt: "Which property is safest for untrusted text?", Choices: []string{"innerHTML", "outerHTML", "textContent", "insertAdjacentHTML"}, Answer: 2},
					},
				},
				{
					ID:      "js-async",
					Title:   "Promises and async/await",
					Summary: "Sequencing asynchronous work.",
					Content: "A Promise represents a value that arrives later. await pauses an async function until the " +
						"promise settles. Rejections surface as exceptions inside try/catch.",
					Minutes: 35,
					Quiz: []QuizQuestion{
						{Prompt: "await can be used directly inside?", Choices: []string{"any function", "async functions and modules", "loops only", "constructors"}, Answer: 1},
						{Prompt: "What runs Promise.all's rejection path?", Choices: []string{"every promise rejecting", "the first rejection", "a timeout", "nothing"}, Answer: 1},
						{Prompt: "An async function always returns?", Choices: []string{"undefined", "a Promise", "a callback", "its raw value"}, Answer: 1},
					},
				},
			},
		},
		{
			ID:      "data-structures",
			Title:   "Practical Data Structures",
			Summary: "Arrays, hash maps and trees with their costs.",
			Level:   LevelIntermediate,
			Tags:    []string{"algorithms", "fundamentals"},
			Hours:   10,
			Lessons: []Lesson{
				{
					ID:      "ds-arrays",
					Title:   "Arrays and Slices",
					Summary: "Contiguous storage and amortised growth.",
					Content: "Arrays give O(1) indexing. Dynamic arrays double their capacity when full, so appends are " +
						"amortised O(1) while inserts in the middle cost O(n).",
					Minutes: 30,
					Quiz: []QuizQuestion{
						{Prompt: "Indexing into an array costs?", Choices: []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"}, Answer: 0},
						{Prompt: "Inserting at the front of a dynamic array costs?", Choices: []string{"O(1)", "O(log n)", "O(n)", "O(n^2)"}, Answer: 2},
					},
				},
				{
					ID:      "ds-hashmaps",
					Title:   "Hash Maps",
					Summary: "Constant-time lookup by key.",
					Content: "A hash map spreads keys over buckets with a hash function. Lookups average O(1); " +
						"collisions degrade a bucket toward O(n). Iteration order is usually unspecified.",
					Minutes: 30,
					Quiz: []QuizQuestion{
						{Prompt: "Average lookup cost in a hash map?", Choices: []string{"O(1)", "O(log n)", "O(n)", "O(n^2)"}, Answer: 0},
						{Prompt: "What degrades hash map performance?", Choices: []string{"small keys", "many collisions", "string values", "deletions"}, Answer: 1},
						{Prompt: "Is hash map iteration order guaranteed in general?", Choices: []string{"yes, insertion order", "yes, sorted", "no", "only for ints"}, Answer: 2},
					},
				},
				{
					ID:      "ds-trees",
					Title:   "Binary Search Trees",
					Summary: "Ordered lookup and balancing.",
					Content: "A BST keeps smaller keys left and larger keys right. Balanced trees guarantee O(log n) " +
						"operations; inserting sorted data into a naive BST degrades it to a list.",
					Minutes: 40,
					Quiz: []QuizQuestion{
						{Prompt: "In-order traversal of a BST yields keys in?", Choices: []string{"random order", "sorted order", "reverse insertion order", "level order"}, Answer: 1},
						{Prompt: "Worst-case lookup in an unbalanced BST?", Choices: []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"}, Answer: 2},
					},
				},
			},
		},
		{
			ID:      "go-concurrency",
			Title:   "Concurrency in Go",
			Summary: "Goroutines, channels and cancellation.",
			Level:   LevelAdvanced,
			Tags:    []string{"go", "concurrency"},
			Hours:   9,
			Lessons: []Lesson{
				{
					ID:      "go-goroutines",
					Title:   "Goroutines",
					Summary: "Lightweight concurrent functions.",
					Content: "The go statement starts a function concurrently. main returning ends the program, " +
						"so use sync.WaitGroup or channels to wait for work to finish.",
					Minutes: 25,
					Quiz: []QuizQuestion{
						{Prompt: "What happens to running goroutines when main returns?", Choices: []string{"they finish first", "they are stopped", "they become daemons", "a panic"}, Answer: 1},
						{Prompt: "Which type waits for a set of goroutines?", Choices: []string{"sync.Mutex", "sync.WaitGroup", "sync.Once", "atomic.Value"}, Answer: 1},
					},
				},
				{
					ID:      "go-channels",
					Title:   "Channels and select",
					Summary: "Communicating between goroutines.",
					Content: "Unbuffered channels synchronise sender and receiver. select waits on several channel " +
						"operations; closing a channel wakes every receiver.",
					Minutes: 35,
					Quiz: []QuizQuestion{
						{Prompt: "Receiving from a closed channel returns?", Choices: []string{"a panic", "the zero value immediately", "blocks forever", "an error"}, Answer: 1},
						{Prompt: "Sending on a closed channel?", Choices: []string{"is ignored", "blocks", "panics", "returns false"}, Answer: 2},
						{Prompt: "A select with a default case?", Choices: []string{"never blocks", "always blocks", "is a compile error", "runs default first"}, Answer: 0},
					},
				},
				{
					ID:      "go-context",
					Title:   "Context and Cancellation",
					Summary: "Deadlines and request scope.",
					Content: "context.Context carries cancellation and deadlines across API boundaries. Pass it as the first " +
						"parameter and always call the cancel function returned by WithTimeout.",
					Minutes: 30,
					Quiz: []QuizQuestion{
						{Prompt: "Where should ctx appear in a signature?", Choices: []string{"last", "first", "in a struct field", "anywhere"}, Answer: 1},
						{Prompt: "What must you do with the cancel func from WithTimeout?", Choices: []string{"ignore it", "call it", "store it globally", "pass it to children"}, Answer: 1},
					},
				},
			},
		},
	}
}
